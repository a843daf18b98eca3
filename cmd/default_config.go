package cmd

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/isladuncan/ndnsim/config"
)

// defaultDescriptor is a minimal two-node starter topology: two
// producers connected by a single channel, where node 1 is also the
// consumer-facing edge node and the central node. It exists so
// `ndnsim init` has something to write out without requiring a
// hand-authored example descriptor.
func defaultDescriptor() config.Descriptor {
	return config.Descriptor{
		Nodes: []config.NodeDescriptor{
			{
				ID:           0,
				ProducerRoot: "uuv1",
				Catalogue:    []string{"uuv1/health_info/battery_level", "uuv1/mission_info/location"},
				Routes:       map[string]int{"usv1/health_info/battery_level": 0},
			},
			{
				ID:           1,
				ProducerRoot: "usv1",
				Catalogue:    []string{"usv1/health_info/battery_level"},
				Routes:       map[string]int{"uuv1/health_info/battery_level": 0, "uuv1/mission_info/location": 0},
				Central:      true,
			},
		},
		Edges: []config.EdgeDescriptor{
			{ID: 0, A: 0, B: 1, LengthM: 500},
		},
		EdgeChannels: []config.EdgeChannelDescriptor{
			{ID: 1, Node: 1, LengthM: 10},
		},
	}
}

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Write a starter network descriptor and tunables document into dir",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.Fatalf("creating %s: %v", dir, err)
		}

		writeYAML(filepath.Join(dir, "network.yaml"), defaultDescriptor())
		writeYAML(filepath.Join(dir, "tunables.yaml"), config.Default())

		logrus.Infof("wrote network.yaml and tunables.yaml to %s", dir)
	},
}

func writeYAML(path string, v interface{}) {
	data, err := yaml.Marshal(v)
	if err != nil {
		logrus.Fatalf("marshaling %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.Fatalf("writing %s: %v", path, err)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
