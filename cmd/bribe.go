package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/bribes"
	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/contracts"
	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/log"
	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/report"
)

var bribeCmd = &cobra.Command{
	Use:   "bribe",
	Short: "build the hidden hand bribe payload from an allocation csv",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := cmd.Flags().GetString("config")
		config.SetupConfig(configFile)
		log.InitLog(config.Conf.Report.LogPath)

		csvPath, _ := cmd.Flags().GetString("csv")
		out, _ := cmd.Flags().GetString("out")
		safeAddress, _ := cmd.Flags().GetString("safe")
		tokenAddress, _ := cmd.Flags().GetString("token")
		periods, _ := cmd.Flags().GetInt64("periods")
		verifyChoice, _ := cmd.Flags().GetBool("verify-choice")

		alloc, err := bribes.LoadCSV(csvPath)
		if err != nil {
			logrus.Fatalf("load bribe csv is err: %v", err)
		}

		book := addrbook.NewRegistry()
		builder := &bribes.Builder{
			Book:      book,
			Tokens:    model.NewTokenStore(contracts.NewReader()),
			Proposals: model.NewProposalStore(),
			Labels:    bribes.GaugeLabels,
			Verifier:  bribes.NewSnapshotVerifier(),
		}
		payload, summary, err := builder.Build(cmd.Context(), alloc, bribes.Options{
			SafeAddress:  safeAddress,
			TokenAddress: tokenAddress,
			Periods:      periods,
			VerifyChoice: verifyChoice,
		})
		if err != nil {
			logrus.Fatalf("build bribe payload is err: %v", err)
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			logrus.Fatalf("marshal bribe payload is err: %v", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			logrus.Fatalf("write bribe payload %s is err: %v", out, err)
		}
		logrus.Infof("wrote bribe payload %s with %d transactions", out, len(payload.Transactions))

		// The same renderer the report command uses, so signers read the
		// deposits in the familiar layout.
		payload.FileName = filepath.ToSlash(out)
		results := []handler.RunResult{{
			Handler: bribes.BuilderHandlerName,
			Reports: model.HandlerReport{payload.FileName: summary},
		}}
		rendered := report.Build(book, []*model.Payload{payload}, results)
		if len(rendered) > 0 {
			summaryPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".report.txt"
			if err := os.WriteFile(summaryPath, []byte(rendered[0].Text), 0o644); err != nil {
				logrus.Fatalf("write bribe summary %s is err: %v", summaryPath, err)
			}
			logrus.Infof("wrote bribe summary %s", summaryPath)
		}
	},
}

func bribeCmdInit() {
	bribeCmd.Flags().String("config", "", "set config file path")
	bribeCmd.Flags().String("csv", "bribes/current.csv", "bribe allocation csv, columns target,platform,amount")
	bribeCmd.Flags().String("out", "bribe_payload.json", "path to write the transaction builder payload to")
	bribeCmd.Flags().String("safe", "", "safe address the payload executes from, default from config")
	bribeCmd.Flags().String("token", "", "bribe token address, default from config or the address book")
	bribeCmd.Flags().Int64("periods", 1, "periods every deposit spreads over")
	bribeCmd.Flags().Bool("verify-choice", false, "check aura labels against the live snapshot gauge vote")
}

func init() {
	bribeCmdInit()
}
