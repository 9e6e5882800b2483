package impact

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jalexspringer/netimpact/src/logger"
	"github.com/jlaffaye/ftp"
)

// Uploader delivers batch files to the Impact FTP ingestion endpoint.
type Uploader struct {
	host     string
	username string
	password string
}

func NewUploader(host, username, password string) *Uploader {
	return &Uploader{host: host, username: username, password: password}
}

// Upload sends each file and removes it locally on success. A failed
// upload logs an error and leaves the file on disk so the run can be
// retried without re-fetching; it never aborts the caller.
func (u *Uploader) Upload(paths ...string) {
	for _, path := range paths {
		if err := u.uploadOne(path); err != nil {
			logger.L.Error("FTP upload failed, re-upload this file in a few minutes", "path", path, "error", err)
			continue
		}
		logger.L.Info("Transactions batch uploaded", "path", path)
		if err := os.Remove(path); err != nil {
			logger.L.Warn("Failed to remove uploaded batch file", "path", path, "error", err)
		}
	}
}

func (u *Uploader) uploadOne(path string) error {
	conn, err := ftp.Dial(u.host+":21", ftp.DialWithTimeout(30*time.Second))
	if err != nil {
		return err
	}
	defer conn.Quit()

	if err := conn.Login(u.username, u.password); err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return conn.Stor(filepath.Base(path), file)
}
