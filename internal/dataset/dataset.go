// Package dataset reads candidate pools, job requirements and retrieved documents from JSON or
// YAML files and writes results back to disk.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/skill-matcher/internal/ranking"
	"github.com/spigell/skill-matcher/internal/relevance"
)

// Wrapper keys accepted around record lists.
const (
	CandidatesKey = "candidates"
	DocumentsKey  = "documents"
)

// LoadCandidates reads a candidate pool. The file holds either a list of candidates or an object
// with a "candidates" list. Top-level fields a Candidate does not define end up in its Payload.
func LoadCandidates(path string) ([]ranking.Candidate, error) {
	items, err := readList(path, CandidatesKey)
	if err != nil {
		return nil, err
	}

	candidates := make([]ranking.Candidate, 0, len(items))
	for i, item := range items {
		var c ranking.Candidate
		unused, err := decode(item, &c)
		if err != nil {
			return nil, fmt.Errorf("decoding candidate #%d from %q: %w", i, path, err)
		}

		raw, _ := item.(map[string]any)
		for _, key := range unused {
			v, ok := raw[key]
			if !ok {
				continue
			}
			if c.Payload == nil {
				c.Payload = make(map[string]any)
			}
			c.Payload[key] = v
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// LoadJob reads one set of job requirements.
func LoadJob(path string) (*ranking.JobRequirements, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("job file %q is empty", path)
	}

	var job ranking.JobRequirements
	if _, err := decode(raw, &job); err != nil {
		return nil, fmt.Errorf("decoding job from %q: %w", path, err)
	}
	return &job, nil
}

// LoadDocuments reads retrieved context documents, either a list or an object with a
// "documents" list.
func LoadDocuments(path string) ([]relevance.Document, error) {
	items, err := readList(path, DocumentsKey)
	if err != nil {
		return nil, err
	}

	var docs []relevance.Document
	if _, err := decode(items, &docs); err != nil {
		return nil, fmt.Errorf("decoding documents from %q: %w", path, err)
	}
	if docs == nil {
		docs = []relevance.Document{}
	}
	return docs, nil
}

// LoadSkillSet reads a categorized skill map such as {"programming_languages": ["go"]}.
func LoadSkillSet(path string) (map[string][]string, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}

	set := make(map[string][]string)
	if raw == nil {
		return set, nil
	}
	if _, err := decode(raw, &set); err != nil {
		return nil, fmt.Errorf("decoding skill set from %q: %w", path, err)
	}
	return set, nil
}

// DumpToTmpFile writes v as indented JSON to a new temporary file and returns its name.
func DumpToTmpFile(v any) (string, error) {
	file, err := os.CreateTemp("", "skill-matcher_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func readList(path, key string) ([]any, error) {
	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}

	switch typed := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return typed, nil
	case map[string]any:
		wrapped, ok := typed[key]
		if !ok {
			return nil, fmt.Errorf("%q: expected a list or an object with %q", path, key)
		}
		if wrapped == nil {
			return nil, nil
		}
		list, ok := wrapped.([]any)
		if !ok {
			return nil, fmt.Errorf("%q: %q is not a list", path, key)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%q: unexpected top-level %T", path, raw)
	}
}

// readFile parses path as YAML for .yaml/.yml and as JSON otherwise. Empty files yield nil.
func readFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing yaml %q: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing json %q: %w", path, err)
		}
	}
	return raw, nil
}

func decode(input, result any) ([]string, error) {
	var md mapstructure.Metadata
	cfg := &mapstructure.DecoderConfig{
		Metadata:         &md,
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(input); err != nil {
		return nil, err
	}
	return md.Unused, nil
}
