package cmd

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/pdevine/tensor"
	"github.com/spf13/cobra"

	"github.com/ibabbar/tensorlayer2/nn"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tensorlayer2",
		Short: "Layer composition demo",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
		},
		RunE: runDemo,
	}

	rootCmd.Flags().Int("batch", 32, "Batch size for the demo forward passes")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	return rootCmd
}

// runDemo wires two small graphs: a two-branch dense concat and an
// element-wise minimum merge, then prints their summaries and output shapes.
func runDemo(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetInt("batch")
	verbose, _ := cmd.Flags().GetBool("verbose")

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	scope := nn.NewScope(logger)

	x := randomTensor(batch, 784)

	// Input -> Dense(800, relu) / Dense(300, relu) -> Concat(axis=1)
	concat := nn.NewParallel(scope, nn.NewConcat(scope, 1, "concat_layer"), "")
	concat.Add(nn.NewDense(scope, 800, nn.ReLU, "relu1_1"))
	concat.Add(nn.NewDense(scope, 300, nn.ReLU, "relu2_1"))

	model := nn.NewSequential(scope, "")
	model.Add(nn.NewInput(scope, ""))
	model.Add(concat)

	out, err := model.Forward([]tensor.Tensor{x})
	if err != nil {
		return err
	}
	nn.Summary(os.Stdout, model.Layers())
	fmt.Printf("concat output shape: %v\n", out.Shape())

	// Dense(500) / Dense(500) -> Elementwise(minimum)
	minimum := nn.NewParallel(scope, nn.NewElementwise(scope, nn.Minimum, nil, "minimum"), "")
	minimum.Add(nn.NewDense(scope, 500, nn.ReLU, "net_0"))
	minimum.Add(nn.NewDense(scope, 500, nn.ReLU, "net_1"))

	out, err = minimum.Forward([]tensor.Tensor{x})
	if err != nil {
		return err
	}
	fmt.Printf("elementwise output shape: %v\n", out.Shape())

	return nil
}

func randomTensor(rows, cols int) tensor.Tensor {
	data := make([]float32, rows*cols)
	for i := range data {
		data[i] = rand.Float32()
	}
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(data))
}
