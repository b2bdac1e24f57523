package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/log"
	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/notifier"
	"github.com/safeops/payloadeye/report"
	"github.com/safeops/payloadeye/utils"
)

var reportCmd = &cobra.Command{
	Use:   "report [files...]",
	Short: "classify payload batches and write human readable reports",
	Run: func(cmd *cobra.Command, args []string) {
		startTime := time.Now()
		configFile, _ := cmd.Flags().GetString("config")
		config.SetupConfig(configFile)
		log.InitLog(config.Conf.Report.LogPath)

		dir, _ := cmd.Flags().GetString("dir")
		out, _ := cmd.Flags().GetString("out")
		notify, _ := cmd.Flags().GetBool("notify")
		if out == "" {
			out = config.Conf.Report.OutDir
		}

		files := append([]string{}, args...)
		if dir != "" {
			found, err := model.FindPayloadFiles(dir)
			if err != nil {
				logrus.Fatalf("list payload files under %s is err: %v", dir, err)
			}
			files = append(files, found...)
		}
		if len(files) == 0 {
			logrus.Fatal("no payload files given, pass --dir or explicit files")
		}

		payloads := []*model.Payload{}
		for _, file := range files {
			payload, err := model.LoadPayloadFile(file)
			if err != nil {
				// Payload directories carry other JSON artifacts next to
				// the batches, skip whatever does not decode.
				logrus.Warnf("skip %s: %v", file, err)
				continue
			}
			payloads = append(payloads, payload)
		}
		if len(payloads) == 0 {
			logrus.Fatal("none of the given files decoded as a payload")
		}

		env := newEnv()
		results, err := handler.RunAll(env, payloads)
		if err != nil {
			logrus.Fatalf("run payload handlers is err: %v", err)
		}
		rendered := report.Build(env.Book, payloads, results)
		if err := report.Write(out, rendered); err != nil {
			logrus.Fatalf("write reports is err: %v", err)
		}
		if notify {
			notifier.NotifyDigest(report.NewDigest(payloads, results, rendered))
		}
		logrus.Infof("reported %d payloads, elapsed: %s", len(payloads), utils.ElapsedTime(startTime))
	},
}

func reportCmdInit() {
	reportCmd.Flags().String("config", "", "set config file path")
	reportCmd.Flags().String("dir", "", "directory to scan for payload json files")
	reportCmd.Flags().String("out", "", "directory to write reports to, default from config")
	reportCmd.Flags().Bool("notify", false, "send the run digest to the configured webhooks")
}

func init() {
	reportCmdInit()
}
