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
	baseURL string
	timeout time.Duration
	userID  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "duebook-cli",
		Short: "Duebook CLI tool",
		Long:  `A command line interface for interacting with the Duebook API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Duebook API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "cli", "User ID recorded in the audit trail")

	rootCmd.AddCommand(postCmd())
	rootCmd.AddCommand(reverseCmd())
	rootCmd.AddCommand(getEntryCmd())
	rootCmd.AddCommand(customerCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(trendCmd())
	rootCmd.AddCommand(dashboardCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func postCmd() *cobra.Command {
	var customerID, shopID, entryType, amount, notes, entryDate string

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a BAKI or PAID entry",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"customer_id": customerID,
				"shop_id":     shopID,
				"type":        entryType,
				"amount":      amount,
				"notes":       notes,
			}
			if entryDate != "" {
				payload["entry_date"] = entryDate
			}

			doPost("/api/v1/ledger/", payload)
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop ID")
	cmd.Flags().StringVar(&entryType, "type", "BAKI", "Entry type (BAKI or PAID)")
	cmd.Flags().StringVar(&amount, "amount", "", "Entry amount")
	cmd.Flags().StringVar(&notes, "notes", "", "Optional notes")
	cmd.Flags().StringVar(&entryDate, "date", "", "Entry date (YYYY-MM-DD, defaults to today)")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("shop")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func reverseCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "reverse <entry-id>",
		Short: "Reverse a ledger entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{}
			if notes != "" {
				payload["notes"] = notes
			}

			doPost("/api/v1/ledger/"+args[0]+"/reverse", payload)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Optional reversal notes")

	return cmd
}

func getEntryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <entry-id>",
		Short: "Fetch a ledger entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/ledger/" + args[0])
		},
	}
}

func customerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "customer <customer-id>",
		Short: "Show a customer and their current balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/customers/" + args[0])
		},
	}
}

func listCmd() *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list <shop-id>",
		Short: "List a shop's ledger entries (shop ID 0 spans all shops)",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			listEntries(args[0], page, size)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")

	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <shop-id>",
		Short: "Show debit/credit totals and net balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/shops/" + args[0] + "/ledger/summary")
		},
	}
}

func trendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend <shop-id>",
		Short: "Show daily credit/debit buckets",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/shops/" + args[0] + "/ledger/trend")
		},
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard <shop-id>",
		Short: "Show shop dashboard metrics",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doGet("/api/v1/shops/" + args[0] + "/dashboard")
		},
	}
}

func listEntries(shopID string, page, size int) {
	body := fetch(http.MethodGet, fmt.Sprintf("/api/v1/shops/%s/ledger?page=%d&size=%d", shopID, page, size), nil)

	var result struct {
		Content []struct {
			ID           string `json:"id"`
			CustomerID   string `json:"customer_id"`
			Type         string `json:"type"`
			Amount       string `json:"amount"`
			BalanceAfter string `json:"balance_after"`
			EntryDate    string `json:"entry_date"`
			Notes        string `json:"notes"`
		} `json:"content"`
		TotalElements int64 `json:"total_elements"`
		TotalPages    int   `json:"total_pages"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%-28s %-28s %-8s %12s %12s %-10s %s\n",
		"ID", "CUSTOMER", "TYPE", "AMOUNT", "BALANCE", "DATE", "NOTES")
	for _, e := range result.Content {
		fmt.Printf("%-28s %-28s %-8s %12s %12s %-10s %s\n",
			e.ID, e.CustomerID, e.Type, e.Amount, e.BalanceAfter, e.EntryDate, truncate(e.Notes, 40))
	}
	fmt.Printf("\n%d entries, %d pages\n", result.TotalElements, result.TotalPages)
}

func doGet(path string) {
	printJSON(mustDecode(fetch(http.MethodGet, path, nil)))
}

func doPost(path string, payload map[string]any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	printJSON(mustDecode(fetch(http.MethodPost, path, body)))
}

func fetch(method, path string, body []byte) []byte {
	client := &http.Client{Timeout: timeout}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", userID)

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	return respBody
}

func mustDecode(body []byte) any {
	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	return result
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format output: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}

	return s[:max-3] + "..."
}
