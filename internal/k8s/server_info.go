package k8s

import (
	"context"
	"fmt"
	"slices"

	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/discovery"

	"github.com/katyella/kubex/internal/constants"
	"github.com/katyella/kubex/internal/k8s/retry"
)

// ServerInfo contains information about the connected API server
type ServerInfo struct {
	GitVersion string `json:"gitVersion"`
	Major      string `json:"major"`
	Minor      string `json:"minor"`
	Platform   string `json:"platform"`
	Type       string `json:"type"`
	Host       string `json:"host,omitempty"`
}

func (si *ServerInfo) String() string {
	s := fmt.Sprintf("%s %s.%s (%s)", si.Type, si.Major, si.Minor, si.GitVersion)
	if si.Host != "" {
		s += " at " + si.Host
	}
	return s
}

// GetServerInfo asks the server for its version and API groups, retrying
// transient failures under policy.
func GetServerInfo(ctx context.Context, client discovery.DiscoveryInterface, host string, policy retry.Policy) (*ServerInfo, error) {
	info, err := retry.Do(ctx, policy, func(context.Context) (*version.Info, error) {
		return client.ServerVersion()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get server version: %w", err)
	}

	clusterType := ClusterTypeKubernetes
	groups, err := retry.Do(ctx, policy, func(context.Context) ([]string, error) {
		list, err := client.ServerGroups()
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(list.Groups))
		for _, g := range list.Groups {
			names = append(names, g.Name)
		}
		return names, nil
	})
	if err == nil && isOpenShift(groups) {
		clusterType = ClusterTypeOpenShift
	}

	return &ServerInfo{
		GitVersion: info.GitVersion,
		Major:      info.Major,
		Minor:      info.Minor,
		Platform:   info.Platform,
		Type:       clusterType.String(),
		Host:       host,
	}, nil
}

func isOpenShift(groups []string) bool {
	found := 0
	for _, g := range openShiftAPIGroups {
		if slices.Contains(groups, g) {
			found++
		}
	}
	return found >= constants.MinOpenShiftAPIsThreshold
}
