package preview

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Run validates, parses and summarizes the file at path.
//
// The stages run in sequence and the first failure ends the run; the file is
// never opened when validation fails. A nil log discards debug output.
func Run(ctx context.Context, path string, opt Options, log logrus.FieldLogger) (*Summary, error) {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	start := time.Now()

	src, err := Validate(path, opt)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"path":        src.Path,
		"format":      src.Format,
		"compression": src.Compression,
		"bytes":       src.Size,
	}).Debug("validated source")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := Parse(src, opt)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"rows":    table.Rows(),
		"columns": len(table.Columns()),
	}).Debug("parsed table")

	summary := Summarize(src, table, opt)

	log.WithField("elapsed", time.Since(start)).Debug("summarized table")

	return summary, nil
}
