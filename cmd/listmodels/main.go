package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-ats/internal/config"
	"alfredoptarigan/resume-ats/internal/services"
)

const generateContentAction = "generateContent"

var rootCmd = &cobra.Command{
	Use:          "listmodels",
	Short:        "List Gemini models that support generateContent for the configured API key",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return listModels(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	if err := viper.BindPFlag("ENV_FILE", rootCmd.Flags().Lookup("env-file")); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func listModels(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load(viper.GetViper())

	fmt.Printf("--- Checking models for key ending in ...%s ---\n", keySuffix(cfg.Gemini.APIKey))

	client, err := services.NewGenAIClient(ctx, cfg.Gemini.APIKey)
	if err != nil {
		return err
	}

	fmt.Println("Available models:")
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return err
		}
		if slices.Contains(model.SupportedActions, generateContentAction) {
			fmt.Printf("- %s\n", model.Name)
		}
	}

	return nil
}

func keySuffix(key string) string {
	if len(key) <= 4 {
		return key
	}
	return key[len(key)-4:]
}
