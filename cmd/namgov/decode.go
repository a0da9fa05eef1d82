// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/blinklabs-io/namgov"
	"github.com/blinklabs-io/namgov/internal/config"
	"github.com/blinklabs-io/namgov/internal/input"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	errConflictingInputs = errors.New(
		"only one of --hex, --base64 and --file may be given",
	)
	errEpochRequired = errors.New("--epoch is required for this record kind")
)

type decodeFlags struct {
	hexInput    string
	base64Input string
	file        string
	encoding    string
	epoch       uint64
	optional    bool
}

func (f *decodeFlags) register(cmd *cobra.Command, withSources bool) {
	if withSources {
		cmd.Flags().StringVar(&f.hexInput, "hex", "", "record bytes as hex")
		cmd.Flags().
			StringVar(&f.base64Input, "base64", "", "record bytes as base64")
		cmd.Flags().StringVarP(
			&f.file,
			"file",
			"f",
			"",
			"read the record from a file (zstd-compressed files are detected)",
		)
	}
	cmd.Flags().StringVarP(
		&f.encoding,
		"encoding",
		"e",
		"",
		"encoding of file or stdin input: raw, hex or base64 (default from config)",
	)
	cmd.Flags().
		Uint64Var(&f.epoch, "epoch", 0, "current epoch used to derive proposal status")
	cmd.Flags().BoolVar(
		&f.optional,
		"optional",
		false,
		"input is an Option-wrapped storage query response",
	)
}

func (f *decodeFlags) options(
	cmd *cobra.Command,
	kind namgov.RecordKind,
) (namgov.DecodeOptions, error) {
	if kind.NeedsEpoch() && !cmd.Flags().Changed("epoch") {
		return namgov.DecodeOptions{}, errEpochRequired
	}
	return namgov.DecodeOptions{
		CurrentEpoch: f.epoch,
		Optional:     f.optional,
	}, nil
}

func (f *decodeFlags) inputEncoding(cfg *config.Config) (input.Encoding, error) {
	if f.encoding == "" {
		return cfg.Encoding(), nil
	}
	return input.ParseEncoding(f.encoding)
}

// readInput returns the raw record bytes from whichever source the flags
// name, falling back to stdin.
func (f *decodeFlags) readInput(
	stdin io.Reader,
	cfg *config.Config,
) ([]byte, error) {
	sources := 0
	for _, v := range []string{f.hexInput, f.base64Input, f.file} {
		if v != "" {
			sources++
		}
	}
	if sources > 1 {
		return nil, errConflictingInputs
	}
	switch {
	case f.hexInput != "":
		return input.Decode(input.EncodingHex, []byte(f.hexInput))
	case f.base64Input != "":
		return input.Decode(input.EncodingBase64, []byte(f.base64Input))
	}
	enc, err := f.inputEncoding(cfg)
	if err != nil {
		return nil, err
	}
	if f.file != "" {
		return input.ReadFile(f.file, enc, 0)
	}
	return input.Read(stdin, enc, 0)
}

func runDecode(
	kind namgov.RecordKind,
	data []byte,
	opts namgov.DecodeOptions,
	stdout io.Writer,
) error {
	out, err := namgov.Decode(kind, data, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

func decodeKindCommand(kind namgov.RecordKind) *cobra.Command {
	flags := &decodeFlags{}
	cmd := &cobra.Command{
		Use:   string(kind),
		Short: fmt.Sprintf("Decode a %s record", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			logger := commonRun(os.Stderr)
			opts, err := flags.options(cmd, kind)
			if err != nil {
				return err
			}
			data, err := flags.readInput(cmd.InOrStdin(), cfg)
			if err != nil {
				return err
			}
			logger.Debug(
				"decoding record",
				"component", programName,
				"kind", string(kind),
				"bytes", len(data),
			)
			return runDecode(kind, data, opts, cmd.OutOrStdout())
		},
	}
	flags.register(cmd, true)
	return cmd
}

// batchResult is one output line of a batch decode. Result holds the
// rendered record as JSON.
type batchResult struct {
	File   string          `json:"file"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// runBatch decodes files with at most jobs concurrent workers and writes
// one line per file in input order. Decode failures are reported inline;
// the returned error counts them. Unreadable files abort the batch.
func runBatch(
	ctx context.Context,
	kind namgov.RecordKind,
	files []string,
	enc input.Encoding,
	opts namgov.DecodeOptions,
	jobs int,
	stdout io.Writer,
) error {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]batchResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := input.ReadFile(file, enc, 0)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = decodeOne(kind, file, data, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	jsonEnc := json.NewEncoder(stdout)
	jsonEnc.SetEscapeHTML(false)
	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
		if err := jsonEnc.Encode(res); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d records failed to decode", failed, len(files))
	}
	return nil
}

func decodeOne(
	kind namgov.RecordKind,
	file string,
	data []byte,
	opts namgov.DecodeOptions,
) batchResult {
	out, err := namgov.Decode(kind, data, opts)
	if err != nil {
		return batchResult{File: file, Error: err.Error()}
	}
	if kind.PlainText() {
		quoted, err := json.Marshal(out)
		if err != nil {
			return batchResult{File: file, Error: err.Error()}
		}
		out = string(quoted)
	}
	return batchResult{File: file, Result: json.RawMessage(out)}
}

func decodeBatchCommand() *cobra.Command {
	flags := &decodeFlags{}
	var kindName string
	var jobs int
	cmd := &cobra.Command{
		Use:   "batch --kind KIND FILE...",
		Short: "Decode many record files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				return errors.New("no config found in context")
			}
			logger := commonRun(os.Stderr)
			kind, err := namgov.ParseRecordKind(kindName)
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, kind)
			if err != nil {
				return err
			}
			enc, err := flags.inputEncoding(cfg)
			if err != nil {
				return err
			}
			logger.Debug(
				"decoding batch",
				"component", programName,
				"kind", string(kind),
				"files", len(args),
				"jobs", jobs,
			)
			return runBatch(
				cmd.Context(),
				kind,
				args,
				enc,
				opts,
				jobs,
				cmd.OutOrStdout(),
			)
		},
	}
	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "record kind of every file")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "maximum concurrent decodes (default GOMAXPROCS)")
	_ = cmd.MarkFlagRequired("kind")
	flags.register(cmd, false)
	return cmd
}

func decodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode Borsh-encoded storage records to JSON",
	}
	for _, kind := range namgov.RecordKinds() {
		cmd.AddCommand(decodeKindCommand(kind))
	}
	cmd.AddCommand(decodeBatchCommand())
	return cmd
}
