package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GCP_BUCKET_NAME", "ETHEREUM_NODE", "REDIS_HOST", "REDIS_PORT", "SUBMIT_TIMEOUT", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "5000" {
		t.Fatalf("default port: %s", cfg.Port)
	}
	if cfg.GCPBucketName != "blockchain-app-bucket" {
		t.Fatalf("default bucket: %s", cfg.GCPBucketName)
	}
	if cfg.EthereumNode != "http://localhost:8545" {
		t.Fatalf("default node: %s", cfg.EthereumNode)
	}
	if cfg.RedisAddr() != "localhost:6379" {
		t.Fatalf("default redis addr: %s", cfg.RedisAddr())
	}
	if cfg.SubmitTimeout != 90*time.Second {
		t.Fatalf("default submit timeout: %s", cfg.SubmitTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("default cors origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("SUBMIT_TIMEOUT", "2m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg := Load()
	if cfg.ListenAddr() != ":8080" {
		t.Fatalf("listen addr: %s", cfg.ListenAddr())
	}
	if cfg.RedisAddr() != "cache.internal:6380" {
		t.Fatalf("redis addr: %s", cfg.RedisAddr())
	}
	if cfg.SubmitTimeout != 2*time.Minute {
		t.Fatalf("submit timeout: %s", cfg.SubmitTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.example" {
		t.Fatalf("cors origins: %v", cfg.CORSAllowedOrigins)
	}
}
