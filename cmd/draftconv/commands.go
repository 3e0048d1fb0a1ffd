package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"draftconv/internal/domain/models/document"
)

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Serialize a JSON document to embed HTML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument()
		if err != nil {
			return err
		}
		html, err := converter.ToHTML(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
		return err
	},
}

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Parse embed HTML into a normalized JSON document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput()
		if err != nil {
			return err
		}
		doc, err := converter.ToDocument(string(input))
		if err != nil {
			return err
		}
		return writeDocument(cmd.OutOrStdout(), doc)
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Repair a JSON document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument()
		if err != nil {
			return err
		}
		doc, err = converter.Normalize(doc)
		if err != nil {
			return err
		}
		return writeDocument(cmd.OutOrStdout(), doc)
	},
}

var markdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Render a JSON document as markdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument()
		if err != nil {
			return err
		}
		markdown, err := converter.ToMarkdown(doc)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), markdown)
		return err
	},
}

func readInput() ([]byte, error) {
	if inPath == "" || inPath == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(inPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// readDocument accepts either a bare node array or {"document": [...]}.
func readDocument() (document.Document, error) {
	data, err := readInput()
	if err != nil {
		return nil, err
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	var envelope struct {
		Document document.Document `json:"document"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("invalid document JSON: %w", err)
	}
	if envelope.Document == nil {
		return nil, fmt.Errorf("invalid document JSON: missing document")
	}
	return envelope.Document, nil
}

func writeDocument(w io.Writer, doc document.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}
