package fetch

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net"
	"path"
	"time"

	"imprint/config"
	"imprint/logger"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPFetcher downloads objects from a remote filesystem over SFTP. Buckets
// map to directories under the configured base path.
type SFTPFetcher struct {
	host       string
	port       string
	user       string
	password   string
	privateKey string
	basePath   string
}

// NewSFTPFetcher creates an SFTP fetcher from env config.
func NewSFTPFetcher() *SFTPFetcher {
	return &SFTPFetcher{
		host:       config.GetSFTPHost(),
		port:       config.GetSFTPPort(),
		user:       config.GetSFTPUser(),
		password:   config.GetSFTPPassword(),
		privateKey: config.GetSFTPPrivateKey(),
		basePath:   config.GetSFTPBasePath(),
	}
}

func (f *SFTPFetcher) ObjectURL(bucket, key string) string {
	return "sftp://" + f.host + path.Join("/", f.basePath, bucket, key)
}

func (f *SFTPFetcher) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	data, err := f.download(ctx, path.Join(f.basePath, bucket, key))
	if err != nil {
		return nil, &UpstreamFetchError{Bucket: bucket, Key: key, Err: err}
	}
	return data, nil
}

func (f *SFTPFetcher) download(ctx context.Context, remotePath string) ([]byte, error) {
	if f.host == "" || f.user == "" {
		return nil, fmt.Errorf("sftp backend not configured: need host and user")
	}

	var auths []ssh.AuthMethod
	if f.privateKey != "" {
		// try to decode as base64, fall back to raw PEM
		keyBytes, err := base64.StdEncoding.DecodeString(f.privateKey)
		if err != nil {
			keyBytes = []byte(f.privateKey)
		}
		signer, err := ssh.ParsePrivateKey(keyBytes)
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	} else if f.password != "" {
		auths = append(auths, ssh.Password(f.password))
	} else {
		return nil, fmt.Errorf("no auth method configured for sftp backend")
	}

	sshConfig := &ssh.ClientConfig{
		User:            f.user,
		Auth:            auths,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	addr := net.JoinHostPort(f.host, f.port)

	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial tcp %s: %w", addr, err)
	}

	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		return nil, fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	sshClient := ssh.NewClient(clientConn, chans, reqs)
	defer sshClient.Close()

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return nil, fmt.Errorf("create sftp client: %w", err)
	}
	defer sftpClient.Close()

	remote, err := sftpClient.Open(remotePath)
	if err != nil {
		return nil, fmt.Errorf("open remote file %s: %w", remotePath, err)
	}
	defer remote.Close()

	data, err := io.ReadAll(remote)
	if err != nil {
		return nil, fmt.Errorf("read remote file %s: %w", remotePath, err)
	}

	logger.Debugf("Fetched sftp://%s%s (%d bytes)", addr, remotePath, len(data))
	return data, nil
}
