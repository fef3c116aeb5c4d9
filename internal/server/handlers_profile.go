package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/jonathan/skillsage/internal/ingestion"
	"github.com/jonathan/skillsage/internal/session"
	"github.com/jonathan/skillsage/internal/types"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// resumePreviewChars is how much of the cleaned resume is echoed back.
const resumePreviewChars = 300

// ResumeResponse describes an accepted resume.
type ResumeResponse struct {
	Metadata *ingestion.Metadata `json:"metadata"`
	Preview  string              `json:"preview"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	sess, err := s.sessions.Get(r.Context(), userID)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Profile)
}

// handlePatchProfile merges a partial update into the profile. Only fields
// present in the body change.
func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var patch types.ProfilePatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	if err := s.validator.Struct(patch); err != nil {
		s.fail(w, validationError(err))
		return
	}

	sess, err := s.sessions.Update(r.Context(), userID, func(sess *session.Session) error {
		sess.MergeProfile(patch)
		return nil
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Profile)
}

// handleUploadResume accepts a multipart file upload (field "file"), or a JSON
// body with pasted text or a public URL, and stores the cleaned text on the profile.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	var (
		doc *ingestion.Document
		err error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		doc, err = s.ingestUpload(w, r)
	} else {
		var req types.ResumeRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}
		if verr := s.validator.Struct(req); verr != nil {
			s.fail(w, validationError(verr))
			return
		}
		if req.URL != "" {
			doc, err = ingestion.IngestFromURL(r.Context(), req.URL, s.fetchOpts)
		} else {
			doc, err = ingestion.IngestText(req.Text)
		}
	}
	if err != nil {
		s.log.Warn("resume rejected", "user_id", userID, "error", err)
		s.fail(w, err)
		return
	}

	text := doc.Text
	if _, err := s.sessions.Update(r.Context(), userID, func(sess *session.Session) error {
		sess.MergeProfile(types.ProfilePatch{ResumeText: &text})
		return nil
	}); err != nil {
		s.fail(w, err)
		return
	}

	s.log.Info("resume stored", "user_id", userID, "source", doc.Metadata.Source, "chars", doc.Metadata.Chars)
	s.jsonResponse(w, http.StatusOK, ResumeResponse{
		Metadata: doc.Metadata,
		Preview:  preview(text, resumePreviewChars),
	})
}

func (s *Server) ingestUpload(w http.ResponseWriter, r *http.Request) (*ingestion.Document, error) {
	r.Body = http.MaxBytesReader(w, r.Body, ingestion.MaxFileBytes+(1<<20))
	if err := r.ParseMultipartForm(ingestion.MaxFileBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ingestion.TooLargeError{Size: tooLarge.Limit + 1, Limit: ingestion.MaxFileBytes}
		}
		return nil, &ErrValidation{Field: "file", Message: "invalid multipart form"}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, &ErrValidation{Field: "file", Message: "required"}
	}
	defer file.Close()

	if header.Size > ingestion.MaxFileBytes {
		return nil, &ingestion.TooLargeError{Size: header.Size, Limit: ingestion.MaxFileBytes}
	}
	data, err := io.ReadAll(io.LimitReader(file, ingestion.MaxFileBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return ingestion.IngestFile(header.Filename, header.Header.Get("Content-Type"), data)
}

// handleNotifications returns the news feed for the profile's branch, or the
// branch named in ?branch=.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	branch := strings.TrimSpace(r.URL.Query().Get("branch"))
	if branch == "" {
		sess, err := s.sessions.Get(r.Context(), userID)
		if err != nil {
			s.fail(w, err)
			return
		}
		branch = sess.Profile.Branch
	}
	if !types.IsBranch(branch) {
		branch = types.DefaultBranch
	}

	s.jsonResponse(w, http.StatusOK, types.NotificationsResponse{
		Branch: branch,
		Items:  types.NewsForBranch(branch),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.NewCatalogResponse())
}

// handleBranchOptions returns candidate skills and interests. Unknown branches
// get the default lists.
func (s *Server) handleBranchOptions(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.OptionsForBranch(r.PathValue("branch")))
}

// decodeJSON reads a bounded JSON body into v, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}
