package meshclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/culturemesh/meshkit/pkg/mesh"
)

// fixtureFile is the layout of a fixtures document. Field names are the
// API's JSON names so a fixture reads like a captured response.
type fixtureFile struct {
	Users    []mesh.User    `json:"users"`
	Networks []mesh.Network `json:"networks"`
	Members  []membership   `json:"members"`
	Events   []mesh.Event   `json:"events"`
}

type membership struct {
	User     mesh.ID   `json:"user"`
	Networks []mesh.ID `json:"networks"`
}

// LoadFixtures builds a Memory from a YAML fixtures document:
//
//	users:
//	  - {id: 42, username: ana}
//	networks:
//	  - {id: 3, network_class: cc, city_cur: Boston, country_origin: Peru}
//	members:
//	  - {user: 42, networks: [3]}
//	events:
//	  - {id: 1, id_network: 3, title: Potluck, event_date: "2030-01-01 18:00:00"}
//
// Every member network and event network must be listed under networks.
func LoadFixtures(r io.Reader) (*Memory, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrFixtures, err)
	}

	// Round-trip through JSON so the mesh types' JSON mapping applies.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Join(ErrFixtures, err)
	}
	var f fixtureFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, errors.Join(ErrFixtures, err)
	}

	networks := make(map[mesh.ID]mesh.Network, len(f.Networks))
	for _, n := range f.Networks {
		networks[n.ID] = n
	}

	m := NewMemory().AddUsers(f.Users...)

	for _, mb := range f.Members {
		for _, id := range mb.Networks {
			n, ok := networks[id]
			if !ok {
				return nil, fmt.Errorf("%w: user %s: unknown network %s", ErrFixtures, mb.User, id)
			}
			m.AddNetworks(mb.User, n)
		}
	}

	for _, e := range f.Events {
		if _, ok := networks[e.NetworkID]; !ok {
			return nil, fmt.Errorf("%w: event %s: unknown network %s", ErrFixtures, e.ID, e.NetworkID)
		}
		m.AddEvents(e.NetworkID, e)
	}

	return m, nil
}

// LoadFixturesFile is LoadFixtures reading from the named file.
func LoadFixturesFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrFixtures, err)
	}
	defer f.Close()

	return LoadFixtures(f)
}
