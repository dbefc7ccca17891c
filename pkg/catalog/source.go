// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/ProtonMail/gopenpgp/v3/crypto"
	"github.com/ProtonMail/gopenpgp/v3/profile"
	"github.com/charmbracelet/log"
	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/viper"
	"github.com/Work-Fort/Bellows/pkg/util"
)

// catalogFile is the on-disk shape of a catalog document.
type catalogFile struct {
	Systems []struct {
		ID    string `mapstructure:"id"`
		Label string `mapstructure:"label"`
	} `mapstructure:"systems"`
	Releases []struct {
		Key   string `mapstructure:"key"`
		Label string `mapstructure:"label"`
	} `mapstructure:"releases"`
	Kernels map[string]map[string][]struct {
		ID    string `mapstructure:"id"`
		Label string `mapstructure:"label"`
	} `mapstructure:"kernels"`
	Defaults struct {
		System  string `mapstructure:"system"`
		Release string `mapstructure:"release"`
	} `mapstructure:"defaults"`
}

// Source reads catalogs from a local YAML file and notifies subscribers when
// a refresh changes the release list or the kernel map. The Catalog it hands
// out is stable across refreshes; its fields are rewritten in place.
type Source struct {
	path    string
	keyring string // public key for detached-signature checks; empty disables them

	catalog *Catalog
	sum     string

	releasesHandlers []func()
	kernelsHandlers  []func()
}

// NewSource creates a source for the catalog file at path. When keyring is
// non-empty, every load requires a valid detached signature at <path>.asc.
func NewSource(path, keyring string) *Source {
	return &Source{
		path:    path,
		keyring: keyring,
		catalog: &Catalog{},
	}
}

// Catalog returns the source's catalog. The same pointer stays valid across
// refreshes.
func (s *Source) Catalog() *Catalog {
	return s.catalog
}

// SubscribeReleases registers a handler invoked after a refresh replaces the
// release list.
func (s *Source) SubscribeReleases(fn func()) {
	s.releasesHandlers = append(s.releasesHandlers, fn)
}

// SubscribeKernels registers a handler invoked after a refresh replaces the
// kernel map.
func (s *Source) SubscribeKernels(fn func()) {
	s.kernelsHandlers = append(s.kernelsHandlers, fn)
}

// Load reads the catalog file for the first time. Subscribers are not
// notified; callers attach their controller after the initial load.
func (s *Source) Load() error {
	parsed, sum, err := s.read()
	if err != nil {
		return err
	}

	s.apply(parsed)
	s.sum = sum
	return nil
}

// Refresh re-reads the catalog file and fires change notifications for the
// parts that actually changed. Returns true when anything did.
func (s *Source) Refresh() (bool, error) {
	parsed, sum, err := s.read()
	if err != nil {
		return false, err
	}

	if sum == s.sum {
		log.Debugf("catalog unchanged: %s", s.path)
		return false, nil
	}

	oldReleases := s.catalog.Releases
	oldKernels := s.catalog.Kernels

	s.apply(parsed)
	s.sum = sum

	if !reflect.DeepEqual(oldReleases, s.catalog.Releases) {
		log.Debugf("catalog releases changed, notifying %d subscriber(s)", len(s.releasesHandlers))
		for _, fn := range s.releasesHandlers {
			fn()
		}
	}
	if !reflect.DeepEqual(oldKernels, s.catalog.Kernels) {
		log.Debugf("catalog kernels changed, notifying %d subscriber(s)", len(s.kernelsHandlers))
		for _, fn := range s.kernelsHandlers {
			fn()
		}
	}

	return true, nil
}

// Verify checks the detached signature on the catalog file without loading it.
func (s *Source) Verify() error {
	if s.keyring == "" {
		return fmt.Errorf("no keyring configured (set catalog.keyring)")
	}

	data, err := util.ReadFileMaybeCompressed(s.path)
	if err != nil {
		return err
	}

	return verifyDetached(data, s.path+".asc", s.keyring)
}

// read loads, optionally verifies, and parses the catalog file.
func (s *Source) read() (*Catalog, string, error) {
	data, err := util.ReadFileMaybeCompressed(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog: %w", err)
	}

	if s.keyring != "" {
		if err := verifyDetached(data, s.path+".asc", s.keyring); err != nil {
			return nil, "", err
		}
	}

	parsed, err := Parse(data)
	if err != nil {
		return nil, "", err
	}

	return parsed, util.SumSHA256(data), nil
}

// apply rewrites the shared catalog in place so holders of the pointer see
// the new contents.
func (s *Source) apply(parsed *Catalog) {
	s.catalog.Systems = parsed.Systems
	s.catalog.Releases = parsed.Releases
	s.catalog.Kernels = parsed.Kernels
	s.catalog.DefaultSystemID = parsed.DefaultSystemID
	s.catalog.DefaultReleaseName = parsed.DefaultReleaseName
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	cat := &Catalog{}

	for _, sys := range file.Systems {
		cat.Systems = append(cat.Systems, Option{Key: sys.ID, Label: sys.Label})
	}

	for _, rel := range file.Releases {
		cat.Releases = append(cat.Releases, Option{Key: rel.Key, Label: rel.Label})
	}
	cat.Releases = sortReleases(cat.Releases)

	if file.Kernels != nil {
		cat.Kernels = make(map[string]map[string][]Option, len(file.Kernels))
		for sysID, byRelease := range file.Kernels {
			kernels := make(map[string][]Option, len(byRelease))
			for relName, entries := range byRelease {
				opts := make([]Option, 0, len(entries))
				for _, k := range entries {
					opts = append(opts, Option{Key: k.ID, Label: k.Label})
				}
				kernels[relName] = opts
			}
			cat.Kernels[sysID] = kernels
		}
	}

	if v.IsSet("defaults") {
		system := file.Defaults.System
		release := file.Defaults.Release
		cat.DefaultSystemID = &system
		cat.DefaultReleaseName = &release
	}

	return cat, nil
}

// sortReleases orders the releases of each system newest-first while keeping
// the systems themselves in their original relative order. Release names that
// do not parse as versions keep their file order within the system.
func sortReleases(releases []Option) []Option {
	groups := make(map[string][]Option)
	var order []string

	for _, rel := range releases {
		system := rel.Key
		if idx := strings.Index(rel.Key, "/"); idx >= 0 {
			system = rel.Key[:idx]
		}
		if _, seen := groups[system]; !seen {
			order = append(order, system)
		}
		groups[system] = append(groups[system], rel)
	}

	sorted := make([]Option, 0, len(releases))
	for _, system := range order {
		group := groups[system]
		sort.SliceStable(group, func(i, j int) bool {
			vi, erri := goversion.NewVersion(releaseName(group[i].Key))
			vj, errj := goversion.NewVersion(releaseName(group[j].Key))
			if erri != nil || errj != nil {
				return false
			}
			return vi.GreaterThan(vj)
		})
		sorted = append(sorted, group...)
	}

	return sorted
}

// releaseName returns the portion of a compound release key after the first
// slash, or the whole key when there is none.
func releaseName(key string) string {
	if idx := strings.Index(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

// verifyDetached checks data against an armored detached signature file using
// the public key at keyringPath.
func verifyDetached(data []byte, signaturePath, keyringPath string) error {
	signature, err := os.ReadFile(signaturePath)
	if err != nil {
		return fmt.Errorf("catalog signature not found: %w", err)
	}

	keyData, err := os.ReadFile(keyringPath)
	if err != nil {
		return fmt.Errorf("failed to read keyring: %w", err)
	}

	publicKey, err := crypto.NewKeyFromArmored(string(keyData))
	if err != nil {
		// Try binary format
		publicKey, err = crypto.NewKey(keyData)
		if err != nil {
			return fmt.Errorf("failed to parse keyring: %w", err)
		}
	}

	pgp := crypto.PGPWithProfile(profile.RFC4880())

	verifier, err := pgp.Verify().
		VerificationKey(publicKey).
		New()
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}

	verifyResult, err := verifier.VerifyDetached(data, signature, crypto.Armor)
	if err != nil {
		verifyResult, err = verifier.VerifyDetached(data, signature, crypto.Bytes)
		if err != nil {
			return fmt.Errorf("signature verification failed (tried both armored and binary formats): %w", err)
		}
	}

	if sigErr := verifyResult.SignatureError(); sigErr != nil {
		return fmt.Errorf("signature error: %w", sigErr)
	}

	return nil
}
