package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const addressPrompt = "Enter the IP address of the Sky Q box"

// promptAddress asks for the box address on in. An empty answer selects
// fallback when there is one.
func promptAddress(in io.Reader, out io.Writer, fallback string) (string, error) {
	if in == nil {
		return "", errors.New("no address configured and no input to prompt on")
	}
	if fallback != "" {
		fmt.Fprintf(out, "%s [%s]: ", addressPrompt, fallback)
	} else {
		fmt.Fprintf(out, "%s: ", addressPrompt)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read address: %w", err)
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		answer = fallback
	}
	if answer == "" {
		return "", errors.New("no address given")
	}
	return answer, nil
}
