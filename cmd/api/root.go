package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resume-ats"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "resume-ats scores resumes against job descriptions with Gemini",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("port", "p", "", "port to listen on (env PORT, default 5000)")
	flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	flags.BoolP("json", "j", false, "json format for logging")
	flags.BoolP("debug", "d", false, "verbose/debug output")

	bindings := map[string]string{
		"PORT":      "port",
		"ENV_FILE":  "env-file",
		"LOG_JSON":  "json",
		"LOG_DEBUG": "debug",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			log.Fatalf("binding %s flag: %v", flag, err)
		}
	}
}
