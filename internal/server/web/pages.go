package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/dmitrijs2005/signbook/internal/common"
	"github.com/dmitrijs2005/signbook/internal/services"
	"github.com/dmitrijs2005/signbook/internal/signature"
)

// statusFor maps service and form errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errUploadTooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrorValidation), errors.Is(err, errBadID), errors.Is(err, errMalformedForm):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// userMessage turns an error into text that is safe to show in a page.
// Store failures are logged, never echoed.
func userMessage(err error, missingUpload string, id int64) string {
	switch {
	case errors.Is(err, services.ErrSignatureRequired):
		return missingUpload
	case errors.Is(err, signature.ErrUnsupportedFormat):
		return "Signature must be a PNG or JPEG image"
	case errors.Is(err, errUploadTooBig):
		return "The uploaded file is too large"
	case errors.Is(err, errBadID):
		return "User ID must be a positive integer"
	case errors.Is(err, errMalformedForm):
		return "The form could not be read, please try again"
	case errors.Is(err, common.ErrorNotFound):
		return fmt.Sprintf("No user with ID %d", id)
	default:
		return "Something went wrong, please try again"
	}
}

func (s *Server) logFailure(ctx context.Context, action string, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		s.logger.Error(ctx, action+" failed", "request_id", requestIDFrom(ctx), "error", err)
	}
}

func (s *Server) homePage(w http.ResponseWriter, r *http.Request) {
	s.render(r.Context(), w, http.StatusOK, pageHome, pageData{})
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := s.readRecordForm(w, r)
	if err == nil {
		_, err = s.records.Create(ctx, in)
	}
	if err != nil {
		s.logFailure(ctx, "create", err)
		s.render(ctx, w, statusFor(err), pageHome, pageData{
			Flash: &flash{Kind: "error", Message: userMessage(err, "Please upload a signature", 0)},
			Form:  formValues{FullName: in.FullName, Address: in.Address},
		})
		return
	}

	s.render(ctx, w, http.StatusOK, pageHome, pageData{
		Flash: &flash{Kind: "success", Message: "User added successfully"},
	})
}

func (s *Server) managePage(w http.ResponseWriter, r *http.Request) {
	s.renderManage(r.Context(), w, http.StatusOK, nil, formValues{})
}

// renderManage always lists the current records, so the table reflects the
// write that just happened.
func (s *Server) renderManage(ctx context.Context, w http.ResponseWriter, status int, f *flash, form formValues) {
	rows, err := s.records.List(ctx)
	if err != nil {
		s.logFailure(ctx, "list", err)
		s.render(ctx, w, http.StatusInternalServerError, pageManage, pageData{
			Flash: &flash{Kind: "error", Message: userMessage(err, "", 0)},
		})
		return
	}
	s.render(ctx, w, status, pageManage, pageData{Flash: f, Form: form, Records: toViews(rows)})
}

func (s *Server) updateRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := s.readRecordForm(w, r)
	form := formValues{ID: r.FormValue("id"), FullName: in.FullName, Address: in.Address}

	var id int64
	if err == nil {
		id, err = parseID(form.ID)
	}
	if err == nil {
		err = s.records.Update(ctx, id, in)
	}
	if err != nil {
		s.logFailure(ctx, "update", err)
		s.renderManage(ctx, w, statusFor(err), &flash{Kind: "error", Message: userMessage(err, "Please upload a new signature", id)}, form)
		return
	}

	s.renderManage(ctx, w, http.StatusOK, &flash{Kind: "success", Message: "User updated successfully"}, formValues{})
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(r.FormValue("id"))
	if err == nil {
		err = s.records.Delete(ctx, id)
	}
	if err != nil {
		s.logFailure(ctx, "delete", err)
		s.renderManage(ctx, w, statusFor(err), &flash{Kind: "error", Message: userMessage(err, "", id)}, formValues{})
		return
	}

	s.renderManage(ctx, w, http.StatusOK, &flash{Kind: "success", Message: "User deleted successfully"}, formValues{})
}

func (s *Server) displayPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := s.records.List(ctx)
	if err != nil {
		s.logFailure(ctx, "list", err)
		s.render(ctx, w, http.StatusInternalServerError, pageDisplay, pageData{
			Flash: &flash{Kind: "error", Message: userMessage(err, "", 0)},
		})
		return
	}
	s.render(ctx, w, http.StatusOK, pageDisplay, pageData{Records: toViews(rows)})
}

func (s *Server) signatureImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := s.records.Get(ctx, id)
	if err != nil {
		s.logFailure(ctx, "signature", err)
		status := statusFor(err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", signature.ContentType(rec.Signature))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	_, _ = w.Write(rec.Signature)
}
