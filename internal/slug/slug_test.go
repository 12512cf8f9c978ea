package slug_test

import (
	"context"
	"errors"
	"testing"

	"hotel_service/internal/slug"
)

func TestMake(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Khách Sạn Hoa Sen", "khach-san-hoa-sen"},
		{"  Đà Nẵng Riverside  ", "da-nang-riverside"},
		{"Hôtel L'Étoile (Paris)!", "hotel-letoile-paris"},
		{"Sun & Sea", "sun-and-sea"},
		{"A.B*C+D~E", "abcde"},
		{"100% Resort", "100percent-resort"},
		{"Mường Thanh -- Grand", "muong-thanh-grand"},
		{"Nhà nghỉ Phương Đông 2", "nha-nghi-phuong-dong-2"},
		{"ALREADY-slugged_name", "already-sluggedname"},
		{"Søndergaard Hotel", "sondergaard-hotel"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := slug.Make(c.in); got != c.want {
			t.Errorf("Make(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestUnique_AppendsCounter(t *testing.T) {
	taken := map[string]bool{}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	want := []string{"khach-san-hoa-sen", "khach-san-hoa-sen-1", "khach-san-hoa-sen-2", "khach-san-hoa-sen-3"}
	for i, w := range want {
		got, err := slug.Unique(context.Background(), "khach-san-hoa-sen", exists)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("run %d: got %q want %q", i, got, w)
		}
		taken[got] = true
	}
}

func TestUnique_PropagatesProbeError(t *testing.T) {
	boom := errors.New("store down")
	_, err := slug.Unique(context.Background(), "x", func(context.Context, string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected probe error, got %v", err)
	}
}

func TestUnique_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := slug.Unique(ctx, "x", func(context.Context, string) (bool, error) { return true, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
