package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/signbook/internal/logging"
	"github.com/dmitrijs2005/signbook/internal/models"
	"github.com/dmitrijs2005/signbook/internal/repositories/repomanager"
	"github.com/dmitrijs2005/signbook/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 1))))
	return buf.Bytes()
}

func testOptions() Options {
	return Options{
		Addr:            "127.0.0.1:0",
		MaxUploadSize:   1 << 20,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		ShutdownTimeout: time.Second,
	}
}

func newTestServer(t *testing.T, opts Options) (*Server, services.RecordService) {
	t.Helper()
	m, err := repomanager.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	rs := services.NewRecordService(m.Records(), logging.Discard())
	s, err := NewServer(opts, rs, logging.Discard())
	require.NoError(t, err)
	return s, rs
}

// multipartBody builds a form; a nil signature leaves the file part out.
func multipartBody(t *testing.T, fields map[string]string, sig []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if sig != nil {
		fw, err := mw.CreateFormFile("signature", "sig.png")
		require.NoError(t, err)
		_, err = fw.Write(sig)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func do(t *testing.T, h http.Handler, method, target string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func seed(t *testing.T, rs services.RecordService, name string) int64 {
	t.Helper()
	id, err := rs.Create(context.Background(), services.RecordInput{FullName: name, Address: "1 Main St", Signature: tinyPNG(t)})
	require.NoError(t, err)
	return id
}

func TestPages_Render(t *testing.T) {
	s, _ := newTestServer(t, testOptions())
	h := s.Routes()

	tests := []struct {
		path  string
		title string
	}{
		{"/", "User Data Management - Home"},
		{"/manage", "User Data Management - Manage Users"},
		{"/display", "User Data Management - Display Users"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := do(t, h, http.MethodGet, tt.path, nil, "")
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, rr.Body.String(), tt.title)
			assert.NotEmpty(t, rr.Header().Get(requestIDHeader))
		})
	}
}

func TestDisplay_EmptyStore(t *testing.T) {
	s, _ := newTestServer(t, testOptions())
	rr := do(t, s.Routes(), http.MethodGet, "/display", nil, "")
	assert.Contains(t, rr.Body.String(), "No users found.")
}

func TestCreateRecord(t *testing.T) {
	s, rs := newTestServer(t, testOptions())
	h := s.Routes()

	body, ct := multipartBody(t, map[string]string{"fullname": "Alice", "address": "1 Main St"}, tinyPNG(t))
	rr := do(t, h, http.MethodPost, "/records", body, ct)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User added successfully")

	rows, err := rs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alice", rows[0].FullName)
	assert.Equal(t, "1 Main St", rows[0].Address)
	assert.Equal(t, tinyPNG(t), rows[0].Signature)
}

func TestCreateRecord_MissingSignature(t *testing.T) {
	s, rs := newTestServer(t, testOptions())

	body, ct := multipartBody(t, map[string]string{"fullname": "Alice", "address": "1 Main St"}, nil)
	rr := do(t, s.Routes(), http.MethodPost, "/records", body, ct)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Please upload a signature")
	// entered values survive the round trip
	assert.Contains(t, rr.Body.String(), `value="Alice"`)

	n, err := rs.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateRecord_NotAnImage(t *testing.T) {
	s, _ := newTestServer(t, testOptions())

	body, ct := multipartBody(t, map[string]string{"fullname": "Alice"}, []byte("plain text, not an image"))
	rr := do(t, s.Routes(), http.MethodPost, "/records", body, ct)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Signature must be a PNG or JPEG image")
}

func TestCreateRecord_TooLarge(t *testing.T) {
	opts := testOptions()
	opts.MaxUploadSize = 64
	s, _ := newTestServer(t, opts)

	body, ct := multipartBody(t, map[string]string{"fullname": "Alice"}, bytes.Repeat([]byte{0x89}, 1024))
	rr := do(t, s.Routes(), http.MethodPost, "/records", body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestManage_ListsRecords(t *testing.T) {
	s, rs := newTestServer(t, testOptions())
	seed(t, rs, "Alice")
	seed(t, rs, "Bob")

	rr := do(t, s.Routes(), http.MethodGet, "/manage", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
	assert.Contains(t, rr.Body.String(), "Bob")
	assert.Contains(t, rr.Body.String(), "image/png")
}

func TestUpdateRecord(t *testing.T) {
	s, rs := newTestServer(t, testOptions())
	id := seed(t, rs, "Alice")
	other := seed(t, rs, "Bob")

	body, ct := multipartBody(t, map[string]string{
		"id":       fmt.Sprint(id),
		"fullname": "Alice B.",
		"address":  "2 Oak St",
	}, tinyPNG(t))
	rr := do(t, s.Routes(), http.MethodPost, "/manage/update", body, ct)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User updated successfully")

	got, err := rs.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.FullName)
	assert.Equal(t, "2 Oak St", got.Address)

	untouched, err := rs.Get(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, "Bob", untouched.FullName)
}

func TestUpdateRecord_Failures(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		sig    bool
		status int
		msg    string
	}{
		{"missing signature", map[string]string{"id": "1", "fullname": "X"}, false, http.StatusBadRequest, "Please upload a new signature"},
		{"unknown id", map[string]string{"id": "999", "fullname": "X"}, true, http.StatusNotFound, "No user with ID 999"},
		{"zero id", map[string]string{"id": "0", "fullname": "X"}, true, http.StatusBadRequest, "User ID must be a positive integer"},
		{"non numeric id", map[string]string{"id": "abc"}, true, http.StatusBadRequest, "User ID must be a positive integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rs := newTestServer(t, testOptions())
			seed(t, rs, "Alice")

			var sig []byte
			if tt.sig {
				sig = tinyPNG(t)
			}
			body, ct := multipartBody(t, tt.fields, sig)
			rr := do(t, s.Routes(), http.MethodPost, "/manage/update", body, ct)

			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.msg)

			got, err := rs.Get(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, "Alice", got.FullName)
		})
	}
}

func TestDeleteRecord(t *testing.T) {
	s, rs := newTestServer(t, testOptions())
	id := seed(t, rs, "Alice")
	h := s.Routes()

	form := "id=" + fmt.Sprint(id)
	rr := do(t, h, http.MethodPost, "/manage/delete", bytes.NewBufferString(form), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "User deleted successfully")

	rr = do(t, h, http.MethodPost, "/manage/delete", bytes.NewBufferString(form), "application/x-www-form-urlencoded")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), fmt.Sprintf("No user with ID %d", id))

	n, err := rs.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSignatureImage(t *testing.T) {
	s, rs := newTestServer(t, testOptions())
	id := seed(t, rs, "Alice")
	h := s.Routes()

	rr := do(t, h, http.MethodGet, fmt.Sprintf("/records/%d/signature", id), nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, tinyPNG(t), rr.Body.Bytes())

	rr = do(t, h, http.MethodGet, "/records/42/signature", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, h, http.MethodGet, "/records/x/signature", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDisplay_ShowsImages(t *testing.T) {
	s, rs := newTestServer(t, testOptions())
	id := seed(t, rs, "Alice")

	rr := do(t, s.Routes(), http.MethodGet, "/display", nil, "")
	assert.Contains(t, rr.Body.String(), fmt.Sprintf(`src="/records/%d/signature"`, id))
	assert.NotContains(t, rr.Body.String(), "No users found.")
}

func TestHealth(t *testing.T) {
	s, rs := newTestServer(t, testOptions())
	seed(t, rs, "Alice")

	rr := do(t, s.Routes(), http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","records":1}`, rr.Body.String())
}

func TestAPI_Lifecycle(t *testing.T) {
	s, _ := newTestServer(t, testOptions())
	h := s.Routes()

	body, ct := multipartBody(t, map[string]string{"fullname": "Alice", "address": "1 Main St"}, tinyPNG(t))
	rr := do(t, h, http.MethodPost, "/api/records", body, ct)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created createdJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)

	rr = do(t, h, http.MethodGet, "/api/records", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []recordJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, recordJSON{ID: 1, FullName: "Alice", Address: "1 Main St", Signature: tinyPNG(t)}, list[0])

	body, ct = multipartBody(t, map[string]string{"fullname": "Alice B.", "address": "2 Oak St"}, tinyPNG(t))
	rr = do(t, h, http.MethodPut, "/api/records/1", body, ct)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/records/1", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var one recordJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &one))
	assert.Equal(t, "Alice B.", one.FullName)

	rr = do(t, h, http.MethodDelete, "/api/records/1", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, http.MethodDelete, "/api/records/1", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	assert.Contains(t, payload.Message, "not found")

	rr = do(t, h, http.MethodGet, "/api/records", nil, "")
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestAPI_Errors(t *testing.T) {
	s, _ := newTestServer(t, testOptions())
	h := s.Routes()

	rr := do(t, h, http.MethodGet, "/api/records/0", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodGet, "/api/records/5", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	body, ct := multipartBody(t, map[string]string{"fullname": "Alice"}, nil)
	rr = do(t, h, http.MethodPost, "/api/records", body, ct)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

type failingService struct {
	services.RecordService
}

func (failingService) List(context.Context) ([]models.Record, error) {
	return nil, errors.New("disk I/O error")
}

func (failingService) Count(context.Context) (int64, error) {
	return 0, errors.New("disk I/O error")
}

func TestStoreFailure_IsNotLeaked(t *testing.T) {
	s, err := NewServer(testOptions(), failingService{}, logging.Discard())
	require.NoError(t, err)
	h := s.Routes()

	rr := do(t, h, http.MethodGet, "/display", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "disk I/O")
	assert.Contains(t, rr.Body.String(), "Something went wrong")

	rr = do(t, h, http.MethodGet, "/api/records", nil, "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "disk I/O")

	rr = do(t, h, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRateLimit(t *testing.T) {
	opts := testOptions()
	opts.RateLimit = 1
	s, _ := newTestServer(t, opts)
	h := s.Routes()

	body, ct := multipartBody(t, map[string]string{"fullname": "Alice"}, tinyPNG(t))
	rr := do(t, h, http.MethodPost, "/records", body, ct)
	assert.Equal(t, http.StatusOK, rr.Code)

	body, ct = multipartBody(t, map[string]string{"fullname": "Bob"}, tinyPNG(t))
	rr = do(t, h, http.MethodPost, "/records", body, ct)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// reads are not limited
	rr = do(t, h, http.MethodGet, "/manage", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestID_Propagated(t *testing.T) {
	s, _ := newTestServer(t, testOptions())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	s.Routes().ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(requestIDHeader))
}

func TestServe_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t, testOptions())

	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx, listen) }()

	url := "http://" + listen.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestParseID(t *testing.T) {
	for _, raw := range []string{"", "0", "-1", "1.5", "abc"} {
		_, err := parseID(raw)
		assert.ErrorIs(t, err, errBadID, raw)
	}
	id, err := parseID(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

