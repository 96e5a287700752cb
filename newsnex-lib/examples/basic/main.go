// ABOUTME: Basic example showing profile extraction with the NewsNex library
// ABOUTME: Demonstrates minimal configuration and common use cases

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	newsnex "newsnex-api/newsnex-lib"
)

func main() {
	client, err := newsnex.NewClient(newsnex.WithQuietMode())
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx := context.Background()

	fmt.Println("=== Extracting from URL ===")
	result, err := client.ExtractURL(ctx, "https://techcrunch.com/2024/01/15/example-funding-round/")
	if err != nil {
		log.Printf("Error extracting: %v\n", err)
	} else {
		fmt.Printf("Title: %s\n", result.Title)
		for _, p := range result.Profiles {
			fmt.Printf("  %d. %s, %s at %s (%s)\n", p.ID, p.Name, p.Role, p.Company, p.ConfidenceLabel)
		}
	}

	fmt.Println("\n=== Extracting from a document ===")
	doc := []byte("Acme CEO Jane Doe said the deal would close in March.")
	result, err = client.ExtractDocument(ctx, doc, "text/plain", "note.txt")
	if err != nil {
		log.Printf("Error extracting: %v\n", err)
	} else {
		fmt.Printf("Found %d profiles\n", len(result.Profiles))
		if err := client.Export(ctx, result.ID, "csv", os.Stdout); err != nil {
			log.Printf("Error exporting: %v\n", err)
		}
	}

	fmt.Println("\n=== Error Handling ===")
	_, err = client.ExtractURL(ctx, "not a url")
	if err != nil {
		switch {
		case newsnex.IsValidationError(err):
			fmt.Println("Validation error:", err)
		case newsnex.IsNetworkError(err):
			fmt.Println("Network error occurred:", err)
		default:
			fmt.Println("Other error occurred:", err)
		}
	}

	fmt.Println("\nDone!")
}
