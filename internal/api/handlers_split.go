package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bgriffith/docforge/internal/doctree"
	"github.com/bgriffith/docforge/internal/parser"
	"github.com/bgriffith/docforge/internal/pipeline"
	"github.com/bgriffith/docforge/internal/render"
	"github.com/bgriffith/docforge/internal/section"
	"github.com/bgriffith/docforge/internal/split"
)

// handleSplit converts one uploaded document synchronously and returns the
// rendered parts.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	doc, ok := s.parseUpload(w, data, filename)
	if !ok {
		return
	}

	specStr := r.FormValue("spec")
	if specStr == "" {
		specStr = s.cfg.DefaultSplitSpec
	}

	var results []split.Result
	if specStr == "none" {
		results = []split.Result{split.Whole(doc)}
	} else {
		spec, err := split.ParseSpec(specStr)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if spec.Strategy == split.StrategyAuto && spec.Words <= 0 {
			spec.Words = s.cfg.DefaultTargetWords
			if v := r.FormValue("target_words"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					spec.Words = n
				}
			}
		}
		results, err = split.Run(doc, spec)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	parts := make([]pipeline.Part, 0, len(results))
	for _, res := range results {
		md, err := render.Markdown{}.Render(res.Document)
		if err != nil {
			jsonError(w, fmt.Sprintf("render part %d: %s", res.Index, err), http.StatusInternalServerError)
			return
		}
		parts = append(parts, pipeline.Part{
			Index:     res.Index,
			Title:     res.Title,
			Slug:      res.FilenameSlug(),
			WordCount: res.WordCount,
			Markdown:  md,
			Metadata:  res.Metadata,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"spec":     specStr,
		"parts":    parts,
	})
}

// handleTOC returns a rendered table of contents for an uploaded document.
func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	doc, ok := s.parseUpload(w, data, filename)
	if !ok {
		return
	}

	maxLevel := 3
	if v := r.FormValue("max_level"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "max_level must be a number", http.StatusBadRequest)
			return
		}
		maxLevel = n
	}
	style := section.TOCBullet
	if v := r.FormValue("style"); v != "" {
		style = section.TOCStyle(v)
	}

	toc, err := section.GenerateTOC(doc, maxLevel, style)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	md, err := render.Markdown{}.Render(doctree.NewDocument(toc))
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"toc":      md,
		"entries":  len(toc.Items),
	})
}

// handleSections returns the heading outline of an uploaded document.
func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	doc, ok := s.parseUpload(w, data, filename)
	if !ok {
		return
	}

	type entry struct {
		Index     int    `json:"index"`
		Title     string `json:"title"`
		Level     int    `json:"level"`
		WordCount int    `json:"word_count"`
	}
	sections := section.All(doc)

	// A target narrows the response to one section, rendered as markdown.
	if v := r.FormValue("target"); v != "" {
		target := section.ByTitle(v)
		target.CaseSensitive = s.cfg.CaseSensitiveTargets
		if n, err := strconv.Atoi(v); err == nil {
			target = section.ByIndex(n)
		}
		idx, err := section.Resolve(sections, target)
		if err != nil {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		sec := sections[idx]
		md, err := render.Markdown{}.Render(doctree.NewDocument(sec.Blocks()...))
		if err != nil {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"filename": filename,
			"section": entry{
				Index:     idx,
				Title:     sec.Title(),
				Level:     sec.Level,
				WordCount: sec.Words(),
			},
			"markdown": md,
		})
		return
	}

	entries := make([]entry, 0, len(sections))
	for i, sec := range sections {
		entries = append(entries, entry{
			Index:     i,
			Title:     sec.Title(),
			Level:     sec.Level,
			WordCount: sec.Words(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"filename": filename,
		"sections": entries,
	})
}

// readUpload pulls the "file" field out of a multipart form, enforcing the
// upload size limit and supported extensions.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil, "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}
	return data, filename, true
}

func (s *Server) parseUpload(w http.ResponseWriter, data []byte, filename string) (*doctree.Document, bool) {
	p, err := parser.ForFile(filename, parser.Options{
		PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "parse: "+err.Error(), http.StatusUnprocessableEntity)
		return nil, false
	}
	return doc, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
