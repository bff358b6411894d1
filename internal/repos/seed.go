package repos

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tradenook/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the demo data a fresh database starts with.
type Seed struct {
	Password   string            `yaml:"password"`
	Users      []SeedUser        `yaml:"users"`
	Categories []domain.Category `yaml:"categories"`
	Products   []SeedProduct     `yaml:"products"`
}

type SeedUser struct {
	ID        string    `yaml:"id"`
	Username  string    `yaml:"username"`
	Email     string    `yaml:"email"`
	Admin     bool      `yaml:"admin"`
	Banned    bool      `yaml:"banned"`
	CreatedAt time.Time `yaml:"createdAt"`
}

type SeedProduct struct {
	ID           string    `yaml:"id"`
	Title        string    `yaml:"title"`
	Description  string    `yaml:"description"`
	Price        float64   `yaml:"price"`
	ImageURL     string    `yaml:"imageUrl"`
	Category     string    `yaml:"category"`
	Condition    string    `yaml:"condition"`
	Location     string    `yaml:"location"`
	ContactPhone string    `yaml:"contactPhone"`
	SellerID     string    `yaml:"sellerId"`
	Sold         bool      `yaml:"sold"`
	Paid         bool      `yaml:"paid"`
	CreatedAt    time.Time `yaml:"createdAt"`
}

// DefaultSeed returns the embedded demo data.
func DefaultSeed() (Seed, error) {
	return ParseSeed(defaultSeed)
}

// LoadSeed reads a YAML seed file, or the embedded one when path is empty.
func LoadSeed(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(b)
}

func ParseSeed(b []byte) (Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	if err := s.check(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// check enforces the invariants the store relies on: exactly one admin,
// products pointing at known sellers and categories.
func (s Seed) check() error {
	admins := 0
	users := map[string]bool{}
	for _, u := range s.Users {
		if u.ID == "" || u.Email == "" {
			return fmt.Errorf("seed: user %q missing id or email", u.Username)
		}
		users[u.ID] = true
		if u.Admin {
			admins++
		}
	}
	if admins != 1 {
		return fmt.Errorf("seed: want exactly one admin, got %d", admins)
	}
	cats := map[string]bool{}
	for _, c := range s.Categories {
		cats[c.Name] = true
	}
	for _, p := range s.Products {
		if !users[p.SellerID] {
			return fmt.Errorf("seed: product %s references unknown seller %s", p.ID, p.SellerID)
		}
		if !cats[p.Category] {
			return fmt.Errorf("seed: product %s references unknown category %q", p.ID, p.Category)
		}
		if !domain.Condition(p.Condition).Valid() {
			return fmt.Errorf("seed: product %s has invalid condition %q", p.ID, p.Condition)
		}
		if p.Price < 0 {
			return fmt.Errorf("seed: product %s has negative price", p.ID)
		}
	}
	return nil
}
