package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jshufro/typegen-truffle/evm"
	"github.com/jshufro/typegen-truffle/truffle"
)

// A build artifact waiting to be parsed
type source struct {
	Path string
	Data []byte
}

// A generated file. Path uses forward slashes.
type outputFile struct {
	Path    string
	Content string
}

func readSources(paths []string) ([]source, error) {
	out := make([]source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("error reading artifact: %w", err)
		}
		out = append(out, source{Path: p, Data: data})
	}
	return out, nil
}

func loadContracts(log *zap.Logger, sources []source) ([]*evm.Contract, error) {
	contracts := make([]*evm.Contract, 0, len(sources))
	seen := make(map[string]string)

	for _, s := range sources {
		c, err := evm.LoadArtifact(s.Path, s.Data)
		if err != nil {
			return nil, err
		}
		if c == nil {
			log.Debug("skipping artifact with an empty abi", zap.String("path", s.Path))
			continue
		}
		if prev, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("contract name %s is produced by both %s and %s", c.Name, prev, s.Path)
		}
		seen[c.Name] = s.Path

		log.Debug("loaded contract",
			zap.String("path", s.Path),
			zap.String("contract", c.Name),
			zap.Int("functions", len(c.Functions)),
			zap.Bool("constructor", c.Constructor != nil))
		contracts = append(contracts, c)
	}

	return contracts, nil
}

// generate renders the declaration files for the artifacts in sources.
func generate(cfg Config, log *zap.Logger, sources []source) ([]outputFile, error) {
	contracts, err := loadContracts(log, sources)
	if err != nil {
		return nil, err
	}

	index, err := truffle.Codegen(contracts)
	if err != nil {
		return nil, err
	}
	headers := truffle.GenerateArtifactHeaders(contracts)

	outDir := filepath.ToSlash(cfg.OutDir)
	log.Info("generated truffle declarations",
		zap.Int("artifacts", len(sources)),
		zap.Int("contracts", len(contracts)),
		zap.String("out_dir", outDir))

	return []outputFile{
		{Path: path.Join(outDir, cfg.IndexFile), Content: index},
		{Path: path.Join(outDir, cfg.HeadersFile), Content: headers},
	}, nil
}

func writeOutputs(log *zap.Logger, files []outputFile) error {
	for _, f := range files {
		p := filepath.FromSlash(f.Path)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		if err := os.WriteFile(p, []byte(f.Content), 0644); err != nil {
			return fmt.Errorf("error writing %s: %w", p, err)
		}
		log.Info("wrote file", zap.String("path", p), zap.Int("bytes", len(f.Content)))
	}
	return nil
}
