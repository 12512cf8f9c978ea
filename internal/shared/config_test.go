package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "hotel.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadFrom_DefaultsWhenFileMissing(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, ":8083", c.HTTP.Addr)
	require.Equal(t, 15*time.Second, c.HTTP.RequestTimeout)
	require.Equal(t, "hotel_service", c.Mongo.Database)
	require.Equal(t, 300, c.Cache.TTLSeconds)
	require.Len(t, c.HTTP.CORSOrigins, 4)
}

func TestLoadFrom_YAMLThenEnv(t *testing.T) {
	p := writeYAML(t, `
app:
  env: dev
http:
  addr: ":9000"
  request_timeout: 5s
mongo:
  uri: mongodb://db:27017
  database: hotels_yaml
cache:
  ttl: 60
`)
	t.Setenv("MONGO_DATABASE", "hotels_env")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	c, err := LoadFrom(p)
	require.NoError(t, err)
	require.Equal(t, "dev", c.App.Env)
	require.Equal(t, ":9000", c.HTTP.Addr)
	require.Equal(t, 5*time.Second, c.HTTP.RequestTimeout)
	require.Equal(t, "mongodb://db:27017", c.Mongo.URI)
	require.Equal(t, "hotels_env", c.Mongo.Database)
	require.Equal(t, 60, c.Cache.TTLSeconds)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, c.HTTP.CORSOrigins)
}

func TestLoadFrom_EmptyRedisAddrDisablesRedis(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	c, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Empty(t, c.Redis.Addr)
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "-1")
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "cache.ttl")
}

func TestLoadFrom_InProcessCacheNeedsSize(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CACHE_L1_MAX_MB", "0")
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "cache.l1_max_mb")

	// no in-process cache is built when caching is off or redis holds it
	t.Setenv("CACHE_TTL_SECONDS", "0")
	_, err = LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	_, err = LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	p := writeYAML(t, "http: [unclosed")
	_, err := LoadFrom(p)
	require.ErrorContains(t, err, "config yaml")
}
