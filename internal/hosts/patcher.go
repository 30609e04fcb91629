// Package hosts rewrites the system hosts file so the OpenStack service
// subdomains resolve to the cluster's ingress IP.
package hosts

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"

	"osctl/pkg/logging"
)

const logSubsystem = "Hosts"

// Services is the fixed list of service subdomains published under the
// managed domain.
var Services = []string{
	"horizon",
	"masakari",
	"keystone",
	"placement",
	"barbican",
	"cloudformation",
	"cinder",
	"gnocchi",
	"glance",
	"neutron",
	"aodh",
	"heat",
	"openstack-store",
	"designate",
	"nova",
	"octavia",
	"glance-api",
}

// Patcher rewrites a hosts file. Every line containing Domain is dropped and
// one entry per service is appended, so repeated runs with the same IP are
// idempotent. Writing /etc/hosts requires elevated privileges; a permission
// failure surfaces as an error naming the file.
type Patcher struct {
	// Path is the live hosts file, typically /etc/hosts.
	Path string
	// BackupPath receives a copy of the original before the rewrite.
	BackupPath string
	// Domain is the managed suffix, e.g. ".it.just.works".
	Domain string
	// Services overrides the default service list when non-nil.
	Services []string
}

// NewPatcher returns a Patcher over the given paths and domain with the
// default service list.
func NewPatcher(path, backupPath, domain string) *Patcher {
	return &Patcher{
		Path:       path,
		BackupPath: backupPath,
		Domain:     domain,
		Services:   Services,
	}
}

// Entries returns the hosts lines that Patch appends for the given IP.
func (p *Patcher) Entries(ip string) []string {
	services := p.Services
	if services == nil {
		services = Services
	}
	entries := make([]string, 0, len(services))
	for _, svc := range services {
		entries = append(entries, fmt.Sprintf("%s %s%s", ip, svc, p.Domain))
	}
	return entries
}

// Patch backs up the hosts file, strips every line containing the managed
// domain, appends the fresh entries and atomically replaces the live file.
// The replacement is all-or-nothing: any failure leaves the original file
// untouched on disk (and the backup, once written, in place).
func (p *Patcher) Patch(ip string) error {
	if ip == "" {
		return fmt.Errorf("refusing to patch %s with an empty ingress IP", p.Path)
	}

	original, err := os.ReadFile(p.Path)
	if err != nil {
		return fmt.Errorf("failed to read hosts file %s: %w", p.Path, err)
	}

	if err := atomic.WriteFile(p.BackupPath, bytes.NewReader(original)); err != nil {
		return fmt.Errorf("failed to back up %s to %s: %w", p.Path, p.BackupPath, err)
	}
	logging.Info(logSubsystem, "Original %s saved as %s", p.Path, p.BackupPath)

	lines := strings.Split(string(original), "\n")
	// Splitting a newline-terminated file yields one empty trailing element.
	if strings.HasSuffix(string(original), "\n") {
		lines = lines[:len(lines)-1]
	}

	var buf bytes.Buffer
	for _, line := range lines {
		if strings.Contains(line, p.Domain) {
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	for _, entry := range p.Entries(ip) {
		buf.WriteString(entry)
		buf.WriteByte('\n')
	}

	if err := atomic.WriteFile(p.Path, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to replace hosts file %s (elevated privileges required?): %w", p.Path, err)
	}
	logging.Info(logSubsystem, "Mapped %d service domains to %s in %s", len(p.Entries(ip)), ip, p.Path)
	return nil
}
