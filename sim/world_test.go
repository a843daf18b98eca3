package sim

import (
	"testing"

	"github.com/isladuncan/ndnsim/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorld_BuildsNodesAndChannels(t *testing.T) {
	world, err := NewWorld(twoNodeDescriptor(), ResolveTunables(config.Default()), NewMetrics())
	require.NoError(t, err)
	assert.Len(t, world.Nodes(), 2)
	assert.Equal(t, []int{1}, world.EdgeChannelIDs())
}

func TestNewWorld_RejectsMissingFIBRoute(t *testing.T) {
	desc := twoNodeDescriptor()
	desc.Nodes[0].Routes = map[string]int{}
	_, err := NewWorld(desc, ResolveTunables(config.Default()), NewMetrics())
	assert.Error(t, err)
}

func TestNewWorld_RejectsRouteLoop(t *testing.T) {
	desc := config.Descriptor{
		Nodes: []config.NodeDescriptor{
			{ID: 0, ProducerRoot: "uuv1", Catalogue: []string{"uuv1/a"}, Routes: map[string]int{"uuv1/a": 0}},
		},
		Edges: []config.EdgeDescriptor{
			{ID: 0, A: 0, B: 0, LengthM: 1},
		},
	}
	// node 0 is the producer for uuv1/a, so this should actually resolve
	// immediately via the prefix check rather than routing — verify the
	// real loop case: a node whose FIB points to a name it doesn't
	// produce and that routes right back to itself.
	desc.Nodes[0].ProducerRoot = "nothing-matches"
	_, err := NewWorld(desc, ResolveTunables(config.Default()), NewMetrics())
	assert.Error(t, err)
}

func TestWorld_ResetSamplesClearsContentStores(t *testing.T) {
	world, err := NewWorld(twoNodeDescriptor(), ResolveTunables(config.Default()), NewMetrics())
	require.NoError(t, err)
	world.Node(0).CS = NewContentStore(0, 5, []*Data{{Name: "n"}})

	world.ResetSamples()

	assert.Equal(t, 0, world.Node(0).CS.Len())
}
