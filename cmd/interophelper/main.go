// Command interophelper runs one encryption-core operation per
// invocation, JSON request on stdin and JSON result on stdout. The
// mobile and desktop test suites shell out to it to verify their
// payloads and records are byte-compatible with this implementation.
// Failures are reported as {"error": ...} with a non-zero exit.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	e2ee "github.com/idan2025/tor-chat-app-sub000"
	"github.com/idan2025/tor-chat-app-sub000/internal/crypto"
)

// Config wires the command's streams so tests can drive it in-process.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// DefaultConfig returns the process stream wiring.
func DefaultConfig() Config {
	return Config{Stdin: os.Stdin, Stdout: os.Stdout}
}

// Request is one command's input. Each command reads the fields it
// needs; text and keys are carried exactly as the library's public
// surface takes them.
type Request struct {
	Plaintext  string `json:"plaintext,omitempty"`
	Payload    string `json:"payload,omitempty"`
	Key        string `json:"key,omitempty"`
	PublicKey  string `json:"publicKey,omitempty"`
	PrivateKey string `json:"privateKey,omitempty"`
	Password   string `json:"password,omitempty"`
	Record     string `json:"record,omitempty"`
	Data       string `json:"data,omitempty"`
}

func writeResult(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// writeError reports err on stdout in the protocol's error shape and
// passes it through for the exit code.
func writeError(w io.Writer, err error) error {
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
	return err
}

func run(args []string, cfg Config) error {
	if len(args) < 2 {
		return writeError(cfg.Stdout, errors.New("usage: interophelper <command>"))
	}

	var req Request
	if err := json.NewDecoder(cfg.Stdin).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return writeError(cfg.Stdout, fmt.Errorf("parse request: %v", err))
	}

	switch args[1] {
	case "generate-keypair":
		kp, err := e2ee.GenerateKeypair()
		if err != nil {
			return writeError(cfg.Stdout, err)
		}
		return writeResult(cfg.Stdout, map[string]string{
			"publicKey":  kp.PublicKey,
			"privateKey": kp.PrivateKey,
		})

	case "generate-room-key":
		key, err := e2ee.GenerateRoomKey()
		if err != nil {
			return writeError(cfg.Stdout, err)
		}
		return writeResult(cfg.Stdout, map[string]string{"key": key})

	case "generate-room-id":
		return writeResult(cfg.Stdout, map[string]string{"roomId": uuid.NewString()})

	case "encrypt-message":
		payload, err := e2ee.EncryptMessage([]byte(req.Plaintext), req.Key)
		if err != nil {
			return writeError(cfg.Stdout, err)
		}
		return writeResult(cfg.Stdout, map[string]string{"payload": payload})

	case "decrypt-message":
		plaintext, err := e2ee.DecryptMessage(req.Payload, req.Key)
		if err != nil {
			return writeError(cfg.Stdout, err)
		}
		return writeResult(cfg.Stdout, map[string]string{"plaintext": string(plaintext)})

	case "encrypt-for-user":
		payload, err := e2ee.EncryptForUser([]byte(req.Plaintext), req.PublicKey, req.PrivateKey)
		if err != nil {
			return writeError(cfg.Stdout, err)
		}
		return writeResult(cfg.Stdout, map[string]string{"payload": payload})

	case "decrypt-from-user":
		plaintext, err := e2ee.DecryptFromUser(req.Payload, req.PublicKey, req.PrivateKey)
		if err != nil {
			return writeError(cfg.Stdout, err)
		}
		return writeResult(cfg.Stdout, map[string]string{"plaintext": string(plaintext)})

	case "hash-password":
		record, err := e2ee.HashPassword(req.Password)
		if err != nil {
			return writeError(cfg.Stdout, err)
		}
		return writeResult(cfg.Stdout, map[string]string{"record": record})

	case "verify-password":
		return writeResult(cfg.Stdout, map[string]bool{
			"valid": e2ee.VerifyPassword(req.Password, req.Record),
		})

	case "decode":
		raw, err := crypto.FromBase64(req.Data)
		if err != nil {
			return writeError(cfg.Stdout, fmt.Errorf("invalid base64: %v", err))
		}
		return writeResult(cfg.Stdout, map[string]int{"length": len(raw)})

	default:
		return writeError(cfg.Stdout, fmt.Errorf("unknown command: %s", args[1]))
	}
}

func main() {
	if err := run(os.Args, DefaultConfig()); err != nil {
		os.Exit(1)
	}
}
