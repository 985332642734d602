package tunnel

import (
	"net"
	"os"
	"os/user"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

var defaultIdentities = []string{"id_ed25519", "id_ecdsa", "id_rsa"}

func (t *Tunnel) clientConfig() (*ssh.ClientConfig, func(), error) {
	auth, closer, err := t.authMethods()
	if err != nil {
		return nil, nil, err
	}

	if len(auth) == 0 {
		closer()
		return nil, nil, ERROR_NO_AUTH
	}

	hostKeyCallback, err := t.hostKeyCallback()
	if err != nil {
		closer()
		return nil, nil, err
	}

	return &ssh.ClientConfig{
		User:            t.config.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         t.config.Timeout,
	}, closer, nil
}

func (t *Tunnel) authMethods() ([]ssh.AuthMethod, func(), error) {
	var methods []ssh.AuthMethod
	closer := func() {}

	if socket := os.Getenv("SSH_AUTH_SOCK"); socket != "" {
		conn, err := net.Dial("unix", socket)
		if err != nil {
			t.logger.Warn("ssh agent unavailable", zap.String("socket", socket), zap.Error(err))
		} else {
			methods = append(methods, ssh.PublicKeysCallback(agent.NewClient(conn).Signers))
			closer = func() { conn.Close() }
		}
	}

	identities := t.config.IdentityFiles
	explicit := len(identities) > 0

	if !explicit {
		home, err := os.UserHomeDir()
		if err == nil {
			for _, name := range defaultIdentities {
				identities = append(identities, filepath.Join(home, ".ssh", name))
			}
		}
	}

	var signers []ssh.Signer

	for _, path := range identities {
		pem, err := os.ReadFile(path)
		if err != nil {
			if explicit {
				closer()
				return nil, nil, errors.Wrapf(err, "reading identity %s", path)
			}

			continue
		}

		signer, err := ssh.ParsePrivateKey(pem)
		if err != nil {
			closer()
			return nil, nil, errors.Wrapf(err, "parsing identity %s", path)
		}

		signers = append(signers, signer)
	}

	if len(signers) > 0 {
		methods = append(methods, ssh.PublicKeys(signers...))
	}

	return methods, closer, nil
}

func (t *Tunnel) hostKeyCallback() (ssh.HostKeyCallback, error) {
	if t.config.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	path := t.config.KnownHosts
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "locating known_hosts")
		}

		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	callback, err := knownhosts.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading known hosts %s", path)
	}

	return callback, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}

	return os.Getenv("USER")
}
