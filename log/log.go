package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// InitLog mirrors every log line to stdout and the given file so CI runs keep
// a full transcript next to the generated reports.
func InitLog(logPath string) {
	if logPath == "" {
		logPath = "./payloadeye.log"
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	file, err := os.OpenFile(logPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o666)
	if err != nil {
		logrus.Fatal(err)
	}
	mw := io.MultiWriter(os.Stdout, file)
	logrus.SetOutput(mw)
}
