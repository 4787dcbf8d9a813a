// Command reagent runs a fixed list of example queries through both agent
// loop variants and prints intermediate reasoning, tool invocations and the
// final answer (or exhaustion notice) to standard output.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/reagent-dev/reagent"
	"github.com/reagent-dev/reagent/config"
	"github.com/reagent-dev/reagent/core"
	"github.com/reagent-dev/reagent/logging"
	"github.com/reagent-dev/reagent/model"
	"github.com/reagent-dev/reagent/model/anthropic"
	"github.com/reagent-dev/reagent/model/openai"
)

var exampleQueries = []string{
	"计算一下 15 的平方加上 25 的平方等于多少？",
	"搜索一下人工智能的最新发展",
}

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	logger := logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})

	llm := buildModel(cfg)

	r := reagent.New(llm, func(o *reagent.Options) {
		o.MaxIterations = cfg.Agent.MaxIterations
		o.Logger = logger
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	runChainOfThought(ctx, r)

	if cfg.Model.Provider == "anthropic" {
		fmt.Println("\n(anthropic 适配器暂不支持流式输出，跳过函数调用示例)")
		return
	}
	runFunctionCall(ctx, r)
}

// buildModel constructs the configured provider adapter. The API key comes
// from the process environment only.
func buildModel(cfg *config.Config) model.Model {
	switch cfg.Model.Provider {
	case "anthropic":
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			log.Fatal("ANTHROPIC_API_KEY environment variable is required")
		}
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = sdk.Model(cfg.Model.Name)
			o.Temperature = cfg.Model.Temperature
			o.MaxTokens = cfg.Model.MaxTokens
		})
	case "openai", "":
		if os.Getenv("OPENAI_API_KEY") == "" {
			log.Fatal("OPENAI_API_KEY environment variable is required")
		}
		return openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.Model.Name
			o.Temperature = cfg.Model.Temperature
			o.MaxCompletionTokens = cfg.Model.MaxTokens
		})
	default:
		log.Fatalf("unknown model provider %q", cfg.Model.Provider)
		return nil
	}
}

func runChainOfThought(ctx context.Context, r *reagent.Reagent) {
	fmt.Println("=== 思维链 (Chain of Thought) ===")
	cot := r.ChainOfThought()

	for _, query := range exampleQueries {
		banner(query)

		answer, err := cot.Run(ctx, query)
		if err != nil {
			log.Fatalf("run failed: %v", err)
		}

		state := cot.State()
		for i, th := range state.Thoughts {
			fmt.Printf("\n思考 %d: %s\n", i+1, th.Thought)
		}
		for _, obs := range state.Observations {
			fmt.Printf("观察: %s\n", obs.Content)
		}
		fmt.Printf("\n处理完成。最终结果: %s\n", answer)
	}
}

func runFunctionCall(ctx context.Context, r *reagent.Reagent) {
	fmt.Println("\n=== 函数调用 (Function Calling) ===")
	fc := r.FunctionCall()

	for _, query := range exampleQueries {
		banner(query)

		out, errs := fc.Run(ctx, query)
		fmt.Print("\nAgent回复: ")
		consume(out, errs)
		fmt.Println()

		fmt.Println("\n对话历史:")
		printHistory(fc.Conversation())
		fmt.Println("\n" + strings.Repeat("-", 50))
	}
}

// consume drains the per-run text delta and error channels, printing deltas
// as they arrive.
func consume(out <-chan string, errs <-chan error) {
	for out != nil || errs != nil {
		select {
		case chunk, ok := <-out:
			if !ok {
				out = nil
				continue
			}
			fmt.Print(chunk)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				log.Printf("error: %v", err)
			}
		}
	}
}

func printHistory(msgs []core.Message) {
	for _, msg := range msgs {
		switch msg.Role {
		case core.RoleUser:
			fmt.Printf("\n用户: %s\n", msg.Content)
		case core.RoleAssistant:
			if msg.Content != "" {
				fmt.Printf("\n助手: %s\n", msg.Content)
			}
			for _, tc := range msg.ToolCalls {
				fmt.Printf("\n助手调用工具: %s\n", tc.Name)
				fmt.Printf("参数: %s\n", tc.Arguments)
			}
		case core.RoleTool:
			fmt.Printf("\n工具(%s): %s\n", msg.Name, msg.Content)
		}
	}
}

func banner(query string) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("处理查询: %s\n", query)
	fmt.Println(strings.Repeat("=", 50))
}
