package ssh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AOSC-Dev/shipit-fleet/internal/constants"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Environment variables read by the native client
const (
	EnvSSHKey           = "SHIPIT_FLEET_SSH_KEY"
	EnvKnownHosts       = "SHIPIT_FLEET_KNOWN_HOSTS"
	EnvSkipHostKeyCheck = "SHIPIT_FLEET_SKIP_HOST_KEY_CHECK"
)

// Client represents an SSH client connection
type Client struct {
	Host    string
	User    string
	Port    int
	KeyPath string
	opts    clientOptions
	client  *ssh.Client
	agent   net.Conn
}

type clientOptions struct {
	timeout time.Duration
}

// ClientOption configures a Client
type ClientOption func(*clientOptions)

// WithTimeout bounds the TCP dial and the SSH handshake. Zero disables it.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = d
	}
}

// NewClient creates a new SSH client
func NewClient(host, user string, port int, keyPath string, opts ...ClientOption) *Client {
	if port == 0 {
		port = constants.DefaultSSHPort
	}
	c := &Client{
		Host:    host,
		User:    user,
		Port:    port,
		KeyPath: keyPath,
	}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Connect establishes an SSH connection
func (c *Client) Connect(ctx context.Context) error {
	auth, err := c.authMethod()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	hostKeyCallback, err := c.hostKeyCallback()
	if err != nil {
		c.closeAgent()
		return fmt.Errorf("host key verification failed: %w", err)
	}

	config := &ssh.ClientConfig{
		User:            c.User,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: hostKeyCallback,
	}

	addr := net.JoinHostPort(c.Host, fmt.Sprintf("%d", c.Port))
	dialer := net.Dialer{Timeout: c.opts.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		c.closeAgent()
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	if c.opts.timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(c.opts.timeout))
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
	if err != nil {
		conn.Close()
		c.closeAgent()
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	_ = conn.SetDeadline(time.Time{})

	c.client = ssh.NewClient(sshConn, chans, reqs)
	return nil
}

// Close closes the SSH connection
func (c *Client) Close() error {
	c.closeAgent()
	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

func (c *Client) closeAgent() {
	if c.agent != nil {
		c.agent.Close()
		c.agent = nil
	}
}

// NewSession creates a new SSH session
func (c *Client) NewSession() (*ssh.Session, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}
	return c.client.NewSession()
}

// ExecStream runs command and streams its output to stdout/stderr.
// The session has no stdin. Cancelling ctx closes the session.
func (c *Client) ExecStream(ctx context.Context, command string, stdout, stderr io.Writer) error {
	session, err := c.NewSession()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	session.Stdout = stdout
	session.Stderr = stderr

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			session.Close()
		case <-done:
		}
	}()

	err = session.Run(command)
	if err == nil {
		return nil
	}

	var exitErr *ssh.ExitError
	if errors.As(err, &exitErr) {
		return NewExitError(exitErr.ExitStatus())
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return fmt.Errorf("failed to execute command: %w", err)
}

// authMethod collects every available signer into one publickey method.
// The ssh package tries each method name once, so signers from the agent
// and key files must share a single callback.
func (c *Client) authMethod() (ssh.AuthMethod, error) {
	// CI/CD: an explicit key in the environment wins
	if envKey := os.Getenv(EnvSSHKey); envKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(envKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvSSHKey, err)
		}
		return ssh.PublicKeys(signer), nil
	}

	if c.KeyPath != "" {
		signer, err := loadPrivateKey(c.KeyPath)
		if err != nil {
			return nil, err
		}
		return ssh.PublicKeys(signer), nil
	}

	var agentClient agent.ExtendedAgent
	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			c.agent = conn
			agentClient = agent.NewClient(conn)
		}
	}

	var fileSigners []ssh.Signer
	for _, p := range defaultKeyPaths() {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		// Encrypted keys are left to the agent
		if signer, err := loadPrivateKey(p); err == nil {
			fileSigners = append(fileSigners, signer)
		}
	}

	if agentClient == nil && len(fileSigners) == 0 {
		return nil, fmt.Errorf("no SSH agent or key found (set %s or key_path)", EnvSSHKey)
	}

	return ssh.PublicKeysCallback(func() ([]ssh.Signer, error) {
		var signers []ssh.Signer
		if agentClient != nil {
			if agentSigners, err := agentClient.Signers(); err == nil {
				signers = append(signers, agentSigners...)
			}
		}
		return append(signers, fileSigners...), nil
	}), nil
}

func defaultKeyPaths() []string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(homeDir, ".ssh", "id_ed25519"),
		filepath.Join(homeDir, ".ssh", "id_rsa"),
	}
}

func loadPrivateKey(keyPath string) (ssh.Signer, error) {
	// Expand ~ in path
	if strings.HasPrefix(keyPath, "~/") {
		homeDir, _ := os.UserHomeDir()
		keyPath = filepath.Join(homeDir, keyPath[2:])
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key %s: %w", keyPath, err)
	}

	return signer, nil
}

// hostKeyCallback returns the host key callback function
// SECURITY: This function requires a valid known_hosts file by default
// In CI/CD, set SHIPIT_FLEET_KNOWN_HOSTS with the content of known_hosts
// or SHIPIT_FLEET_SKIP_HOST_KEY_CHECK=true to skip verification (not recommended)
func (c *Client) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if knownHostsContent := os.Getenv(EnvKnownHosts); knownHostsContent != "" {
		// knownhosts.New only reads files
		tmpFile, err := os.CreateTemp("", "known_hosts")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp known_hosts: %w", err)
		}
		defer os.Remove(tmpFile.Name())

		if _, err := tmpFile.WriteString(knownHostsContent); err != nil {
			tmpFile.Close()
			return nil, fmt.Errorf("failed to write temp known_hosts: %w", err)
		}
		tmpFile.Close()

		callback, err := knownhosts.New(tmpFile.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", EnvKnownHosts, err)
		}
		return callback, nil
	}

	if os.Getenv(EnvSkipHostKeyCheck) == "true" {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	knownHostsPath := filepath.Join(homeDir, ".ssh", "known_hosts")

	if _, err := os.Stat(knownHostsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("SSH known_hosts file not found at %s. "+
			"Please connect to the server manually first with: ssh %s@%s -p %d\n"+
			"For CI/CD, set %s or %s=true",
			knownHostsPath, c.User, c.Host, c.Port, EnvKnownHosts, EnvSkipHostKeyCheck)
	}

	callback, err := knownhosts.New(knownHostsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read known_hosts: %w", err)
	}

	return callback, nil
}
