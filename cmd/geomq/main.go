// Command geomq answers geometric queries about rays and tetrahedra:
// boundary intersection, solid containment, face enumeration, and
// scripted batches of queries.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/kernel"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/kernel/facet"
	"github.com/Gadiguibou/creaform-technical-challenge/pkg/kernel/sdfx"
)

const appName = "geomq"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Ray/tetrahedron geometric queries",
	Long: `geomq answers geometric predicate queries about a ray (point +
direction) and a tetrahedral solid (four vertices): whether the ray
crosses the solid's boundary, whether a point lies inside the solid,
and what the solid's faces look like. Batches of queries can be
scripted in a small Lisp dialect (see "geomq eval").

Vertices and vectors are written as comma-separated coordinates
("x,y,z"); a pyramid is four vertices joined by semicolons.`,
}

// newKernel builds the solid kernel backend selected in the config.
func newKernel() (kernel.Kernel, error) {
	switch backend := viper.GetString("kernel"); backend {
	case "sdfx":
		return sdfx.NewWithResolution(viper.GetInt("mesh-cells")), nil
	case "facet":
		return facet.New(), nil
	default:
		return nil, fmt.Errorf("unknown kernel backend %q (want sdfx or facet)", backend)
	}
}

var intersectCmd = &cobra.Command{
	Use:   "intersect",
	Short: "Test whether a line crosses a pyramid's boundary",
	RunE: func(cmd *cobra.Command, args []string) error {
		point, err := parseVec(cmd.Flag("point").Value.String())
		if err != nil {
			return fmt.Errorf("--point: %w", err)
		}
		direction, err := parseVec(cmd.Flag("direction").Value.String())
		if err != nil {
			return fmt.Errorf("--direction: %w", err)
		}
		pyramid, err := parsePyramid(cmd.Flag("pyramid").Value.String())
		if err != nil {
			return fmt.Errorf("--pyramid: %w", err)
		}

		k, err := newKernel()
		if err != nil {
			return err
		}
		app := NewApp(k)

		if pyramid.Degenerate() {
			log.Printf("warning: pyramid vertices are (nearly) coplanar; the query may be meaningless")
		}

		fmt.Fprintln(cmd.OutOrStdout(), app.Intersect(geom.NewLine(point, direction), pyramid))
		return nil
	},
}

var containsCmd = &cobra.Command{
	Use:   "contains",
	Short: "Test whether a point lies inside a pyramid",
	RunE: func(cmd *cobra.Command, args []string) error {
		point, err := parseVec(cmd.Flag("point").Value.String())
		if err != nil {
			return fmt.Errorf("--point: %w", err)
		}
		pyramid, err := parsePyramid(cmd.Flag("pyramid").Value.String())
		if err != nil {
			return fmt.Errorf("--pyramid: %w", err)
		}

		k, err := newKernel()
		if err != nil {
			return err
		}
		app := NewApp(k)

		min, max := app.BoundingBox(pyramid)
		fmt.Fprintf(cmd.OutOrStdout(), "bounding box: [%g %g %g] .. [%g %g %g]\n",
			min[0], min[1], min[2], max[0], max[1], max[2])
		fmt.Fprintln(cmd.OutOrStdout(), app.Contains(pyramid, point))
		return nil
	},
}

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "List a pyramid's four triangular faces",
	RunE: func(cmd *cobra.Command, args []string) error {
		pyramid, err := parsePyramid(cmd.Flag("pyramid").Value.String())
		if err != nil {
			return fmt.Errorf("--pyramid: %w", err)
		}

		for i, face := range pyramid.Faces() {
			fmt.Fprintf(cmd.OutOrStdout(), "face %d: (%g,%g,%g) (%g,%g,%g) (%g,%g,%g) normal (%g,%g,%g)\n",
				i,
				face.V0.X, face.V0.Y, face.V0.Z,
				face.V1.X, face.V1.Y, face.V1.Z,
				face.V2.X, face.V2.Y, face.V2.Z,
				face.Normal.X, face.Normal.Y, face.Normal.Z)
			if face.Degenerate() {
				fmt.Fprintf(cmd.OutOrStdout(), "face %d: warning: vertices are collinear, zero normal\n", i)
			}
		}
		return nil
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval <script.lisp>",
	Short: "Run a geometry script and print its recorded queries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		k, err := newKernel()
		if err != nil {
			return err
		}
		app := NewApp(k)

		trace, evalErrs, err := app.RunScript(string(source))
		if err != nil {
			return err
		}
		if len(evalErrs) > 0 {
			for _, e := range evalErrs {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[0], e.Error())
			}
			return fmt.Errorf("%d evaluation error(s)", len(evalErrs))
		}

		for i, q := range trace.Queries {
			fmt.Fprintf(cmd.OutOrStdout(), "query %d: %v\n", i, q.Hit)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.geomq.yaml)")

	intersectCmd.Flags().String("point", "0,0,0", "line point as x,y,z")
	intersectCmd.Flags().String("direction", "1,1,1", "line direction as x,y,z")
	intersectCmd.Flags().String("pyramid", "", "pyramid vertices as v0;v1;v2;v3")
	_ = intersectCmd.MarkFlagRequired("pyramid")

	containsCmd.Flags().String("point", "0,0,0", "query point as x,y,z")
	containsCmd.Flags().String("pyramid", "", "pyramid vertices as v0;v1;v2;v3")
	_ = containsCmd.MarkFlagRequired("pyramid")

	facesCmd.Flags().String("pyramid", "", "pyramid vertices as v0;v1;v2;v3")
	_ = facesCmd.MarkFlagRequired("pyramid")

	rootCmd.AddCommand(intersectCmd, containsCmd, facesCmd, evalCmd)
}

// initConfig reads in the config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName("." + appName)
		}
	}

	viper.SetDefault("kernel", "sdfx")
	viper.SetDefault("mesh-cells", 200)

	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Printf("using config file %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
