package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// IsTextFile checks if a file is a text file and not binary
func IsTextFile(filePath string) bool {
	f, err := os.Open(filePath)
	if err != nil {
		LogError("Error opening file %s: %v", filePath, err)
		return false
	}
	defer func() {
		if err := f.Close(); err != nil {
			LogWarning("Failed to close file: %v", err)
		}
	}()

	// Read the first 512 bytes to determine content type
	buffer := make([]byte, 512)
	n, err := f.Read(buffer)
	if err != nil && err != io.EOF {
		return false
	}

	for i := 0; i < n; i++ {
		if (buffer[i] < 9 || (buffer[i] > 13 && buffer[i] < 32)) && buffer[i] != 0x1B {
			LogWarning("File %s appears to be binary (detected binary content)", filePath)
			return false
		}
	}

	return true
}

// ReadTextFile reads a text file and returns its trimmed content.
// Binary files are rejected so they never end up inside a prompt.
func ReadTextFile(filePath string) (string, error) {
	if !IsTextFile(filePath) {
		return "", fmt.Errorf("file %s appears to be binary, not a text file", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			LogWarning("Failed to close file: %v", err)
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	LogDebug("Read %d lines from %s", len(lines), filePath)
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// WriteTextFile writes text to a file, creating parent directories as needed
func WriteTextFile(filePath string, content string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			LogWarning("Failed to close file: %v", err)
		}
	}()

	writer := bufio.NewWriter(f)
	if _, err := writer.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	LogDebug("Successfully wrote content to %s", filePath)
	return nil
}

// WriteYAMLFile marshals v as YAML and writes it to filePath
func WriteYAMLFile(filePath string, v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return WriteTextFile(filePath, string(data))
}

// ExpandHomeDir expands a path if it starts with "~/"
func ExpandHomeDir(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
