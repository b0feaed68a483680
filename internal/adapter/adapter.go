// Package adapter holds helpers shared by the outbound adapters.
package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// MakeTLSConfig returns a [*tls.Config] built from PEM files.
//
// All args are the filepaths. ca replaces the system roots when set, cert and
// key must be set together. It returns nil when every path is empty.
func MakeTLSConfig(ca, cert, key string) (*tls.Config, error) {
	const op = "adapter.MakeTLSConfig"

	if ca == "" && cert == "" && key == "" {
		return nil, nil
	}

	config := &tls.Config{MinVersion: tls.VersionTLS12}

	if ca != "" {
		caCert, err := os.ReadFile(ca)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to read CA certificate file: %w", op, err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("%s: failed to parse CA certificate", op)
		}
		config.RootCAs = caCertPool
	}

	if (cert == "") != (key == "") {
		return nil, fmt.Errorf("%s: %w", op, errors.New("cert and key must be set together"))
	}

	if cert != "" {
		clientCert, err := tls.LoadX509KeyPair(cert, key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		config.Certificates = []tls.Certificate{clientCert}
	}

	return config, nil
}
