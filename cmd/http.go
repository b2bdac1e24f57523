package cmd

import (
	"github.com/spf13/cobra"

	"github.com/safeops/payloadeye/config"
	"github.com/safeops/payloadeye/log"
	"github.com/safeops/payloadeye/server"
)

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "run http server",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, _ := cmd.Flags().GetString("config")
		config.SetupConfig(configFile)
		log.InitLog(config.Conf.Report.LogPath)
		srv := server.NewHTTPServer(newEnv())
		srv.Run()
	},
}

func httpCmdInit() {
	httpCmd.Flags().String("config", "", "set config file path")
}

func init() {
	httpCmdInit()
}
