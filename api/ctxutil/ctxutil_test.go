package ctxutil

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant/domain/user"
	"restaurant/infrastructure/auth"
	"restaurant/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(body io.Reader, contentType string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/upload", body)
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c
}

func TestAccessChecks(t *testing.T) {
	c := newContext(nil, "")
	assert.False(t, CanAccess(c, "u1"))
	assert.False(t, IsAdmin(c))

	SetPrincipal(c, auth.Principal{UserID: "u1", Role: user.RoleUser})
	p, ok := PrincipalFrom(c)
	require.True(t, ok)
	assert.Equal(t, "u1", p.UserID)
	assert.True(t, CanAccess(c, "u1"))
	assert.False(t, CanAccess(c, "u2"))
	assert.False(t, CanAccess(c, ""))

	SetPrincipal(c, auth.Principal{UserID: "a1", Role: user.RoleAdmin})
	assert.True(t, IsAdmin(c))
	assert.True(t, CanAccess(c, "u2"))
}

func TestBoolOr(t *testing.T) {
	f := false
	assert.True(t, BoolOr(nil, true))
	assert.False(t, BoolOr(&f, true))
}

func multipartBody(t *testing.T, field string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, "pho.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestOpenUpload(t *testing.T) {
	body, ct := multipartBody(t, UploadField, 128)
	name, f, err := OpenUpload(newContext(body, ct), 1024)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "pho.png", name)

	body, ct = multipartBody(t, "file", 128)
	_, _, err = OpenUpload(newContext(body, ct), 1024)
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	body, ct = multipartBody(t, UploadField, 4096)
	_, _, err = OpenUpload(newContext(body, ct), 1024)
	assert.True(t, errors.Is(err, errors.CodePayloadTooLarge))
}
