package infra

import (
	"fmt"
	"os"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer loads the role policy from disk. Paths default to the
// files shipped under config/rbac but can be overridden for tests.
func NewEnforcer() (*casbin.Enforcer, error) {
	modelPath := os.Getenv("RBAC_MODEL_PATH")
	if modelPath == "" {
		modelPath = "config/rbac/model.conf"
	}
	policyPath := os.Getenv("RBAC_POLICY_PATH")
	if policyPath == "" {
		policyPath = "config/rbac/policy.csv"
	}

	enforcer, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	return enforcer, nil
}
