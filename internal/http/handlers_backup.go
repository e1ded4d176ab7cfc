package http

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"financepro/internal/backup"
)

const maxBackupBytes = 8 << 20

func (s *Server) handleExportBackup(w http.ResponseWriter, r *http.Request) {
	doc, err := backup.Export(s.store.Snapshot(), s.auth.Users())
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("finance_pro_backup_%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// handleImportBackup replaces the full dataset and user registry with the
// uploaded document.
func (s *Server) handleImportBackup(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupBytes))
	if err != nil {
		writeBadRequest(w, fmt.Errorf("read backup body: %w", err))
		return
	}

	data, users, err := backup.Import(raw)
	if err != nil {
		writeError(w, err)
		return
	}

	s.store.Replace(r.Context(), data)
	s.auth.ReplaceUsers(r.Context(), users)
	w.WriteHeader(http.StatusNoContent)
}
