// Package servicetwin is an in-memory stand-in for the companies and users service. It serves
// the same routes, bodies, and headers as the real service, including the behaviors of the real
// service that contradict its documentation, so the contract tests can be run and tested without
// network access.
package servicetwin

import (
	"crypto/x509"
	"math/rand"
	"net/http/httptest"

	"github.com/sendrequest/api-contract-tests/framework"
	"github.com/sendrequest/api-contract-tests/servicedef"
)

// DefaultLocales are the locales whose names are used for generated users.
func DefaultLocales() []string {
	return []string{"ru_RU", "en_US"}
}

type Config struct {
	// Seed is the initial data; nil means DefaultSeed.
	Seed *Seed
	// RandomSeed makes the generated users deterministic.
	RandomSeed int64
	Locales    []string
	Logger     framework.Logger
	// Faults makes the twin deviate from the real service.
	Faults Faults
}

// Faults are regressions the twin can be told to have, so that it can be shown that the contract
// tests notice them. The zero value is a faithful twin.
type Faults struct {
	// OffsetOffByOne makes company and user lists start one record after the requested offset.
	OffsetOffByOne bool
	// IgnoreStatusFilter makes the company list return companies of every status.
	IgnoreStatusFilter bool
	// TranslationLang, if set, is the language whose text is served whenever a known language
	// is requested.
	TranslationLang servicedef.Language
	// RedirectOrigin, if set, replaces the HTTPS origin in the Location of redirects.
	RedirectOrigin string
}

// Instance is a running twin: an HTTPS server for the API and a plain HTTP server that redirects
// everything to it.
type Instance struct {
	secure   *httptest.Server
	insecure *httptest.Server
	store    *Store
}

// Start launches a twin. Call Close when done with it.
func Start(config Config) (*Instance, error) {
	seed := config.Seed
	if seed == nil {
		var err error
		if seed, err = DefaultSeed(); err != nil {
			return nil, err
		}
	}
	locales := config.Locales
	if len(locales) == 0 {
		locales = DefaultLocales()
	}
	logger := config.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}

	users, err := seed.generateUsers(rand.New(rand.NewSource(config.RandomSeed)), locales)
	if err != nil {
		return nil, err
	}
	store := newStore(seed.Companies, users)

	secure := httptest.NewTLSServer(newRouter(store, framework.LoggerWithPrefix(logger, "[twin] "), config.Faults))
	redirectOrigin := secure.URL
	if config.Faults.RedirectOrigin != "" {
		redirectOrigin = config.Faults.RedirectOrigin
	}
	insecure := httptest.NewServer(redirectToHTTPS(redirectOrigin))
	return &Instance{secure: secure, insecure: insecure, store: store}, nil
}

// URL returns the HTTPS origin, such as "https://127.0.0.1:12345".
func (i *Instance) URL() string { return i.secure.URL }

// InsecureURL returns the plain HTTP origin that redirects to URL.
func (i *Instance) InsecureURL() string { return i.insecure.URL }

// CertPool returns a pool that trusts the twin's self-signed certificate.
func (i *Instance) CertPool() *x509.CertPool {
	pool := x509.NewCertPool()
	pool.AddCert(i.secure.Certificate())
	return pool
}

func (i *Instance) Store() *Store { return i.store }

func (i *Instance) Close() {
	i.insecure.Close()
	i.secure.Close()
}
