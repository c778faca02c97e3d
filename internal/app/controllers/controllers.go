package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/nonso/acadport/internal/pkg/apperrors"
)

// maxUploadBytes bounds any single uploaded file part.
const maxUploadBytes = 10 << 20

var errFileTooLarge = apperrors.NewValidation("file", "uploaded file exceeds the 10MB limit")

// readFormFile reads one optional multipart file part into memory. A
// missing part returns nil content and no error; callers decide whether
// the part is required.
func readFormFile(ctx *gin.Context, field string) (content []byte, filename string, err error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	if header.Size > maxUploadBytes {
		return nil, "", errFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	content, err = io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, "", err
	}
	if int64(len(content)) > maxUploadBytes {
		return nil, "", errFileTooLarge
	}
	return content, header.Filename, nil
}
