package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	Version   = "dev"
)

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "affirmly",
		Short: "Affirmly - personalized affirmations from the command line",
		Long:  "Request affirmations from an Affirmly server and check its health",
	}

	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "Affirmly server URL")

	rootCmd.AddCommand(
		affirmCmd(),
		healthCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func affirmCmd() *cobra.Command {
	var name, feeling, details, language string

	cmd := &cobra.Command{
		Use:   "affirm",
		Short: "Request a personalized affirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{
				"name":    name,
				"feeling": feeling,
			}
			if details != "" {
				payload["details"] = details
			}
			if language != "" {
				payload["language"] = language
			}
			body, err := json.Marshal(payload)
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: 30 * time.Second}
			r := newRetrier(500, 5000, 3)

			var affirmation string
			err = r.do(func() error {
				resp, err := client.Post(serverURL+"/api/affirmation", "application/json", bytes.NewReader(body))
				if err != nil {
					return err
				}
				defer resp.Body.Close()

				respBody, err := io.ReadAll(resp.Body)
				if err != nil {
					return err
				}

				switch {
				case resp.StatusCode == http.StatusOK:
					var out struct {
						Affirmation string `json:"affirmation"`
					}
					if err := json.Unmarshal(respBody, &out); err != nil {
						return err
					}
					affirmation = out.Affirmation
					return nil
				case resp.StatusCode == http.StatusTooManyRequests:
					return fmt.Errorf("rate limited: %s", serverMessage(respBody))
				case isRetryableStatus(resp):
					return retryableStatusError{status: resp.StatusCode}
				default:
					return fmt.Errorf("request rejected: %s", serverMessage(respBody))
				}
			}, isRetryableHTTP)
			if err != nil {
				return err
			}

			fmt.Println(affirmation)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Your name")
	cmd.Flags().StringVar(&feeling, "feeling", "", "How you are feeling, in your own words")
	cmd.Flags().StringVar(&details, "details", "", "Optional extra context")
	cmd.Flags().StringVar(&language, "language", "", "Language code (en, af, la, zh, ru, de, fr, es)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("feeling")

	return cmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: 10 * time.Second}
			resp, err := client.Get(serverURL + "/health")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server unhealthy: status %d", resp.StatusCode)
			}

			var status struct {
				Status string `json:"status"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
				return err
			}

			fmt.Printf("Server: %s\nStatus: %s\n", serverURL, status.Status)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("affirmly %s\n", Version)
		},
	}
}

func serverMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return string(body)
}
