package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/parsers"
	"github.com/cwahlfeldt/bulk-post-importer/internal/staging"
	"github.com/cwahlfeldt/bulk-post-importer/internal/utils"
)

// FileField is the multipart form field carrying the import file.
const FileField = "import_file"

var validExtensions = []string{"json", "csv"}

// Sniffed content types accepted for upload. Both JSON and CSV commonly
// sniff as text/plain, so the check rejects binaries, not mislabeled text.
var validContentTypes = []string{"application/json", "text/csv", "text/plain", "application/csv"}

// UploadResponse is the first-step result: the staged upload's token plus
// everything the mapping UI needs to build its form.
type UploadResponse struct {
	Token     string   `json:"token"`
	Keys      []string `json:"keys"`
	ItemCount int      `json:"item_count"`
	PostType  string   `json:"post_type"`
	FileName  string   `json:"file_name"`
}

type UploadController struct {
	types    PostTypeStore
	staging  StagingStore
	maxBytes int64
}

func NewUploadController(types PostTypeStore, stagingStore StagingStore, maxBytes int64) *UploadController {
	return &UploadController{
		types:    types,
		staging:  stagingStore,
		maxBytes: maxBytes,
	}
}

// Upload validates and parses an uploaded file, stages the records, and
// returns the staging token with the mapping-candidate keys. Validation
// order: file presence, size, extension, content type, post type, parse.
func (u *UploadController) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile(FileField)
	if err != nil {
		respondImportError(c, importer.NewError(importer.CodeNoFile, "No file was uploaded."))
		return
	}
	defer file.Close()

	if u.maxBytes > 0 && header.Size > u.maxBytes {
		respondImportError(c, importer.NewError(importer.CodeUploadError,
			"File upload error: the uploaded file exceeds the maximum allowed size."))
		return
	}

	content, readErr := io.ReadAll(file)
	if readErr != nil {
		respondImportError(c, importer.NewError(importer.CodeFileReadError,
			"Could not read the uploaded file."))
		return
	}

	fileName := filepath.Base(header.Filename)
	detected := sniffContentType(content)

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if !contains(validExtensions, ext) {
		respondImportError(c, importer.NewError(importer.CodeInvalidFileType,
			"Invalid file type. Please upload a .json or .csv file (detected type: %s).", detected))
		return
	}

	if !contains(validContentTypes, detected) {
		respondImportError(c, importer.NewError(importer.CodeInvalidMimeType,
			"Invalid MIME type. Please upload a valid JSON or CSV file (detected type: %s).", detected))
		return
	}

	postType := utils.SanitizeKey(c.PostForm("post_type"))
	if postType == "" {
		postType = "post"
	}
	exists, existsErr := u.types.PostTypeExists(postType)
	if existsErr != nil {
		respondInternalError(c, existsErr, "post type lookup")
		return
	}
	if !exists {
		respondImportError(c, importer.NewError(importer.CodeInvalidPostType,
			"Invalid post type selected."))
		return
	}

	result, parseErr := parsers.Parse(content, fileName)
	if parseErr != nil {
		respondImportError(c, parseErr)
		return
	}

	token, tokenErr := u.staging.GenerateToken()
	if tokenErr != nil {
		respondInternalError(c, tokenErr, "staging token")
		return
	}
	putErr := u.staging.Put(token, &staging.Staged{
		Records:  result.Records,
		PostType: postType,
		FileName: fileName,
	})
	if putErr != nil {
		respondInternalError(c, putErr, "staging upload")
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Token:     token,
		Keys:      result.Keys,
		ItemCount: result.Count,
		PostType:  postType,
		FileName:  fileName,
	})
}

// sniffContentType detects the content type from the file's bytes, without
// the charset parameter.
func sniffContentType(content []byte) string {
	detected := http.DetectContentType(content)
	if i := strings.IndexByte(detected, ';'); i >= 0 {
		detected = detected[:i]
	}
	return strings.TrimSpace(detected)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
