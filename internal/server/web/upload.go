package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/signbook/internal/services"
)

const signatureField = "signature"

var (
	errBadID         = errors.New("ID must be a positive integer")
	errUploadTooBig  = errors.New("upload is too large")
	errMalformedForm = errors.New("malformed form")
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, errBadID
	}
	return id, nil
}

// readRecordForm parses a multipart create/update form. A missing file
// yields an input with nil Signature; the service decides what that means.
func (s *Server) readRecordForm(w http.ResponseWriter, r *http.Request) (services.RecordInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize)

	if err := r.ParseMultipartForm(s.opts.MaxUploadSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			return services.RecordInput{}, errUploadTooBig
		}
		return services.RecordInput{}, fmt.Errorf("%w: %v", errMalformedForm, err)
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Warn(r.Context(), "failed to free multipart form resources", "error", err)
		}
	}()

	in := services.RecordInput{
		FullName: r.FormValue("fullname"),
		Address:  r.FormValue("address"),
	}

	file, _, err := r.FormFile(signatureField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil
		}
		return in, fmt.Errorf("%w: %v", errMalformedForm, err)
	}
	defer file.Close()

	in.Signature, err = io.ReadAll(file)
	if err != nil {
		return in, fmt.Errorf("%w: %v", errMalformedForm, err)
	}
	return in, nil
}
