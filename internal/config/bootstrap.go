package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/types"
)

const bootstrapIdentitiesEnv = "BOOTSTRAP_IDENTITIES_YAML"

//go:embed bootstrap_identities.yaml
var bootstrapFS embed.FS

// BootstrapIdentity is a fallback credential recognized by the auth
// service ahead of the user store. These are configuration, not stored
// users: they let an operator log in before any account exists.
type BootstrapIdentity struct {
	Email    string     `yaml:"email"`
	Password string     `yaml:"password"`
	Role     types.Role `yaml:"role"`
}

type bootstrapFile struct {
	Identities []BootstrapIdentity `yaml:"identities"`
}

// LoadBootstrapIdentities reads the identity list from the file named
// by BOOTSTRAP_IDENTITIES_YAML, falling back to the embedded default
// list when the env var is unset or the file is unreadable.
func LoadBootstrapIdentities(log *logger.Logger) []BootstrapIdentity {
	if path := strings.TrimSpace(os.Getenv(bootstrapIdentitiesEnv)); path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			ids, perr := parseBootstrapIdentities(raw)
			if perr == nil {
				return ids
			}
			if log != nil {
				log.Warn("Bootstrap identities file invalid, using embedded defaults", "path", path, "error", perr)
			}
		} else if log != nil {
			log.Warn("Bootstrap identities file unreadable, using embedded defaults", "path", path, "error", err)
		}
	}

	raw, err := bootstrapFS.ReadFile("bootstrap_identities.yaml")
	if err != nil {
		// embed guarantees presence; failure here means a broken build
		if log != nil {
			log.Error("Embedded bootstrap identities missing", "error", err)
		}
		return nil
	}
	ids, err := parseBootstrapIdentities(raw)
	if err != nil {
		if log != nil {
			log.Error("Embedded bootstrap identities invalid", "error", err)
		}
		return nil
	}
	return ids
}

func parseBootstrapIdentities(raw []byte) ([]BootstrapIdentity, error) {
	var f bootstrapFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse bootstrap identities: %w", err)
	}
	out := make([]BootstrapIdentity, 0, len(f.Identities))
	for _, id := range f.Identities {
		if strings.TrimSpace(id.Email) == "" || id.Password == "" {
			continue
		}
		if !id.Role.Valid() {
			return nil, fmt.Errorf("bootstrap identity %q has invalid role %q", id.Email, id.Role)
		}
		out = append(out, id)
	}
	return out, nil
}
