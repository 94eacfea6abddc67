package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/invoice-dashboard/config"
)

func TestRedisOptions_Direct(t *testing.T) {
	t.Run("plain address", func(t *testing.T) {
		opts, topology, err := redisOptions(config.RedisConfig{URI: " localhost:6379 ", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, redisDirect, topology)
		assert.Equal(t, []string{"localhost:6379"}, opts.Addrs)
		assert.Equal(t, "secret", opts.Password)
	})

	t.Run("redis url", func(t *testing.T) {
		opts, topology, err := redisOptions(config.RedisConfig{URI: "redis://user:pw@cache:6380/2"})
		require.NoError(t, err)
		assert.Equal(t, redisDirect, topology)
		assert.Equal(t, []string{"cache:6380"}, opts.Addrs)
		assert.Equal(t, "user", opts.Username)
		assert.Equal(t, "pw", opts.Password)
		assert.Equal(t, 2, opts.DB)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("rediss url enables tls", func(t *testing.T) {
		opts, _, err := redisOptions(config.RedisConfig{URI: "rediss://cache:6380"})
		require.NoError(t, err)
		assert.NotNil(t, opts.TLSConfig)
	})

	t.Run("missing uri", func(t *testing.T) {
		_, _, err := redisOptions(config.RedisConfig{})
		assert.Error(t, err)
	})

	t.Run("bad url", func(t *testing.T) {
		_, _, err := redisOptions(config.RedisConfig{URI: "redis://cache:6379/notanumber"})
		assert.Error(t, err)
	})
}

func TestRedisOptions_Sentinel(t *testing.T) {
	opts, topology, err := redisOptions(config.RedisConfig{
		UseSentinel:        true,
		SentinelNodes:      []string{"s1:26379", " ", "s2:26379"},
		SentinelMasterName: "primary",
		SentinelPassword:   "sentinel-pw",
	})
	require.NoError(t, err)
	assert.Equal(t, redisSentinel, topology)
	assert.Equal(t, []string{"s1:26379", "s2:26379"}, opts.Addrs)
	assert.Equal(t, "primary", opts.MasterName)
	assert.Equal(t, "sentinel-pw", opts.SentinelPassword)

	_, _, err = redisOptions(config.RedisConfig{UseSentinel: true, URI: "localhost:6379"})
	assert.Error(t, err, "sentinel ignores the URI and needs nodes")
}

func TestRedisOptions_Cluster(t *testing.T) {
	opts, topology, err := redisOptions(config.RedisConfig{
		UseCluster:   true,
		URI:          "redis://seed:7000",
		ClusterNodes: []string{"n1:7000", "n2:7000"},
	})
	require.NoError(t, err)
	assert.Equal(t, redisCluster, topology)
	assert.Equal(t, []string{"n1:7000", "n2:7000"}, opts.Addrs)

	opts, _, err = redisOptions(config.RedisConfig{UseCluster: true, URI: "redis://seed:7000"})
	require.NoError(t, err)
	assert.Equal(t, []string{"seed:7000"}, opts.Addrs)

	_, _, err = redisOptions(config.RedisConfig{UseCluster: true})
	assert.Error(t, err)
}

func TestNormalizeAddrs(t *testing.T) {
	assert.Equal(t, []string{"a:1", "b:2"}, normalizeAddrs([]string{" a:1", "", "b:2 "}))
	assert.Empty(t, normalizeAddrs(nil))
}

func TestIsRedisURL(t *testing.T) {
	assert.True(t, isRedisURL("redis://localhost"))
	assert.True(t, isRedisURL("rediss://localhost"))
	assert.False(t, isRedisURL("localhost:6379"))
	assert.False(t, isRedisURL("http://localhost"))
}
