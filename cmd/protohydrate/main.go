// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command protohydrate hydrates the declarations in one or more binary
// FileDescriptorSets, such as those written by "buf build -o" or
// "protoc -o", and prints the resulting cross-referenced AST.
//
// When the same file appears in more than one input, the first one wins.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protohydrate/descriptor"
	"github.com/bufbuild/protohydrate/dump"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	include []string
	format  string
	jobs    int
	verbose bool
}

func newRootCommand() *cobra.Command {
	opts := new(options)
	cmd := &cobra.Command{
		Use:          "protohydrate [flags] FILE...",
		Short:        "Print the cross-referenced declarations of FileDescriptorSets",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&opts.include, "include", nil, "only hydrate files whose paths match this glob (repeatable)")
	flags.StringVar(&opts.format, "format", "yaml", "output format: yaml, text, or files (file paths, imports first)")
	flags.IntVarP(&opts.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of inputs to read concurrently")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")
	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options, paths []string) error {
	switch opts.format {
	case "yaml", "text", "files":
	default:
		return fmt.Errorf("unknown format %q, want yaml, text or files", opts.format)
	}

	log := zap.NewNop()
	if opts.verbose {
		var err error
		if log, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	sets, err := read(ctx, log, paths, opts.jobs)
	if err != nil {
		return err
	}

	a, err := descriptor.Load(merge(sets),
		descriptor.WithLogger(log),
		descriptor.WithInclude(opts.include...))
	if err != nil {
		return err
	}

	switch opts.format {
	case "text":
		return dump.Text(out, a)
	case "files":
		files, err := a.DependencyOrder()
		if err != nil {
			return err
		}
		for _, f := range files {
			if _, err := fmt.Fprintln(out, f.Path()); err != nil {
				return err
			}
		}
		return nil
	}

	doc, err := dump.YAML(a)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, doc)
	return err
}

// read decodes the FileDescriptorSet in each of paths, at most jobs at a time.
func read(ctx context.Context, log *zap.Logger, paths []string, jobs int) ([]*descriptorpb.FileDescriptorSet, error) {
	sets := make([]*descriptorpb.FileDescriptorSet, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, jobs))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			set := new(descriptorpb.FileDescriptorSet)
			if err := proto.Unmarshal(data, set); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			log.Debug("read descriptor set", zap.String("path", path), zap.Int("files", len(set.GetFile())))
			sets[i] = set
			return nil
		})
	}
	return sets, g.Wait()
}

// merge concatenates sets, keeping only the first file with any given path.
func merge(sets []*descriptorpb.FileDescriptorSet) *descriptorpb.FileDescriptorSet {
	merged := new(descriptorpb.FileDescriptorSet)
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, file := range set.GetFile() {
			if _, ok := seen[file.GetName()]; ok {
				continue
			}
			seen[file.GetName()] = struct{}{}
			merged.File = append(merged.File, file)
		}
	}
	return merged
}
