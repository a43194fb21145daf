package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/mailnote"
	"gopkg.in/yaml.v3"
)

// profileFile is the YAML layout of a --profiles file:
//
//	profiles:
//	  - name: weekly
//	    delimiter: Thanks for reading
//	    wrapperIdSuffix: body
type profileFile struct {
	Profiles []mailnote.Profile `yaml:"profiles"`
}

// LoadProfiles returns the built-in profile merged with the profiles in
// the YAML file at path. Profiles from the file replace built-ins with the
// same name. An empty path yields only the built-in profile.
func LoadProfiles(path string) (map[string]mailnote.Profile, error) {
	def := mailnote.DefaultProfile()
	profiles := map[string]mailnote.Profile{def.Name: def}

	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}

	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, mailnote.Errorf(mailnote.EINVALID, "invalid profiles file %s: %v", path, err)
	}

	for _, p := range file.Profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		profiles[p.Name] = p
	}

	return profiles, nil
}
