package ristretto_test

import (
	"context"
	"testing"

	"hotel_service/internal/adapters/ristretto"
	"hotel_service/internal/domain"
)

func TestCache_SetGetDel(t *testing.T) {
	c, err := ristretto.New(1 << 20)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "hotel:slug:hoa-sen", domain.Hotel{ID: "h1", Slug: "hoa-sen"}, 60); err != nil {
		t.Fatal(err)
	}
	c.Wait()

	var got domain.Hotel
	ok, err := c.Get(ctx, "hotel:slug:hoa-sen", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.ID != "h1" {
		t.Fatalf("unexpected value: %+v", got)
	}

	_ = c.Del(ctx, "hotel:slug:hoa-sen")
	ok, _ = c.Get(ctx, "hotel:slug:hoa-sen", &got)
	if ok {
		t.Fatal("expected miss after delete")
	}
}
