package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// runPlugin answers a single protoc plugin request read from in. The
// request's files to generate are paths of truffle build artifacts and its
// parameter holds comma separated key=value settings.
//
// Generation errors are reported to the host in the response; only a failure
// to read the request or write the response is returned.
func runPlugin(in io.Reader, out io.Writer, cfg Config, log *zap.Logger) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("error reading plugin request: %w", err)
	}

	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(data, req); err != nil {
		return fmt.Errorf("error parsing plugin request: %w", err)
	}

	resp := respond(req, cfg, log)
	if resp.Error != nil {
		log.Error("generation failed", zap.String("error", resp.GetError()))
	}

	data, err = proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("error encoding plugin response: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("error writing plugin response: %w", err)
	}

	return nil
}

func respond(req *pluginpb.CodeGeneratorRequest, cfg Config, log *zap.Logger) *pluginpb.CodeGeneratorResponse {
	files, err := func() ([]outputFile, error) {
		if err := cfg.applyParameter(req.GetParameter()); err != nil {
			return nil, err
		}

		sources, err := readSources(req.GetFileToGenerate())
		if err != nil {
			return nil, err
		}

		return generate(cfg, log, sources)
	}()
	if err != nil {
		return &pluginpb.CodeGeneratorResponse{Error: proto.String(err.Error())}
	}

	resp := &pluginpb.CodeGeneratorResponse{}
	for _, f := range files {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(f.Path),
			Content: proto.String(f.Content),
		})
	}
	return resp
}
