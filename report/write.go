package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/model"
)

// CombinedFileName is the all-payloads report written next to the per-file
// reports.
const CombinedFileName = "payload_reports.txt"

// Write saves one .report.txt per rendered payload under outDir, mirroring
// relative payload paths, plus the combined report. Nothing is written when
// no payload produced a report.
func Write(outDir string, files []RenderedFile) error {
	if len(files) == 0 {
		return nil
	}
	if outDir == "" {
		outDir = "."
	}
	combined := strings.Builder{}
	for i, file := range files {
		if i > 0 {
			combined.WriteString("\n")
		}
		combined.WriteString(file.Text)

		path := reportPath(outDir, file.FileName)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create report dir %s is err: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(file.Text), 0o644); err != nil {
			return fmt.Errorf("write report %s is err: %v", path, err)
		}
		logrus.Infof("wrote report %s", path)
	}
	combinedPath := filepath.Join(outDir, CombinedFileName)
	if err := os.WriteFile(combinedPath, []byte(combined.String()), 0o644); err != nil {
		return fmt.Errorf("write combined report %s is err: %v", combinedPath, err)
	}
	logrus.Infof("wrote combined report %s", combinedPath)
	return nil
}

// reportPath swaps the payload extension for .report.txt under outDir.
// Absolute payload paths are flattened to their base name.
func reportPath(outDir, fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".report.txt"
	if filepath.IsAbs(name) {
		name = filepath.Base(name)
	}
	return filepath.Join(outDir, name)
}

// Digest summarizes one run for the notifier fan-out.
type Digest struct {
	Files        int
	Transactions int
	Uncovered    int
	Reports      int
}

func NewDigest(payloads []*model.Payload, results []handler.RunResult, rendered []RenderedFile) Digest {
	digest := Digest{Files: len(payloads), Reports: len(rendered)}
	for _, payload := range payloads {
		digest.Transactions += len(payload.Transactions)
	}
	for _, result := range results {
		if result.Handler != handler.HandlerUncovered {
			continue
		}
		for _, fileReport := range result.Reports {
			digest.Uncovered += len(fileReport.Rows)
		}
	}
	return digest
}
