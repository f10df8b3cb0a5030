// Package main provides the pedump CLI tool.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ZacharyZcR/pedump/internal/cli"
	"github.com/ZacharyZcR/pedump/internal/hexdump"
	"github.com/ZacharyZcR/pedump/internal/logging"
	"github.com/ZacharyZcR/pedump/internal/pe"
	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

const version = "0.2.0"

type options struct {
	headers  bool
	sections bool
	stub     bool
	noDump   bool
	noColor  bool
	width    int
	logLevel string
}

func newRootCmd(stdout io.Writer, stdin io.Reader) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pedump [flags] <PE文件路径> [每页行数]",
		Short: "PE文件十六进制转储与头部查看工具",
		Long: `pedump 以十六进制/ASCII 形式转储整个文件，重复行折叠为 "*"。
指定每页行数时，每页之间按 Enter 继续。使用 -H 查看带偏移的头部字段。`,
		Version:       version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args, stdout, stdin)
		},
	}

	cmd.Flags().BoolVarP(&opts.headers, "headers", "H", false, "显示DOS头、文件头、可选头和数据目录")
	cmd.Flags().BoolVar(&opts.sections, "sections", true, "与 -H 一起显示节区信息")
	cmd.Flags().BoolVar(&opts.stub, "stub", false, "转储DOS存根")
	cmd.Flags().BoolVar(&opts.noDump, "no-dump", false, "不输出文件转储")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "禁用彩色输出")
	cmd.Flags().IntVarP(&opts.width, "width", "w", hexdump.RowWidth, "每行字节数")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "日志级别 (trace, debug, info, warn, error)")
	cmd.SetOut(stdout)

	return cmd
}

func run(opts *options, args []string, stdout io.Writer, stdin io.Reader) error {
	if opts.noColor {
		color.NoColor = true
	}

	pageSize := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("每页行数格式错误: %s (应为正整数)", args[1])
		}
		pageSize = n
	}

	logger := logging.NewLogger("pedump", logging.LogLevel(opts.logLevel), nil)

	reader, err := pe.Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug("loaded file", "path", reader.FilePath(), "size", reader.FileSize())

	if opts.headers || opts.stub {
		info := pe.NewAnalyzer(reader, logger).Analyze()
		if opts.headers {
			reporter := cli.NewReporter(info)
			reporter.SetOutput(stdout)
			reporter.SetShowSections(opts.sections)
			reporter.Print()
		}
		if opts.stub {
			printStub(stdout, info)
		}
	}

	if opts.noDump {
		return nil
	}
	return dump(stdout, stdin, reader.Bytes(), opts.width, pageSize, logger)
}

func dump(stdout io.Writer, stdin io.Reader, buf []byte, width, pageSize int, logger hclog.Logger) error {
	rows := hexdump.Chunk(buf, width, 0)
	text := hexdump.Render(rows)
	logger.Debug("rendered dump", "rows", len(rows), "page_size", pageSize)

	return cli.NewDumpPrinter(stdout, stdin, pageSize).Print(text)
}

func printStub(stdout io.Writer, info *pe.Info) {
	cyan := color.New(color.FgCyan, color.Bold)
	_, _ = cyan.Fprintf(stdout, "\n========== DOS存根 (%d 字节) ==========\n", len(info.DOSStub))
	if len(info.DOSStub) == 0 {
		fmt.Fprintln(stdout, "  无DOS存根")
		return
	}
	fmt.Fprint(stdout, hexdump.Render(hexdump.Chunk(info.DOSStub, hexdump.RowWidth, pe.DOSHeaderSize)))
	fmt.Fprintln(stdout)
}

func main() {
	cmd := newRootCmd(color.Output, os.Stdin)
	if err := cmd.Execute(); err != nil {
		red := color.New(color.FgRed, color.Bold)
		_, _ = red.Fprintf(os.Stderr, "\n错误: %v\n\n", err)
		os.Exit(1)
	}
}
