package controllers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

// DownloadBackup streams the sqlite database file as a dated attachment.
// Only the sqlite driver has a single file to hand out; under postgres the
// endpoint reports not found.
func DownloadBackup(cfg config.DBConfig, loc *time.Location, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.IsSQLite() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Database not found"))
			return
		}

		file, err := os.Open(cfg.Path)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Database not found"))
			return
		}
		defer file.Close()

		name := fmt.Sprintf("backup-%s.db", time.Now().In(loc).Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

		http.ServeContent(w, r, name, time.Time{}, file)
	}
}
