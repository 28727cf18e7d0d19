package auth

import "testing"

func TestSealUnsealRoundTrip(t *testing.T) {
	sealed, err := sealSecret("device-1", "123456")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if sealed == "123456" {
		t.Fatalf("sealed form must differ from the pin")
	}

	pin, err := unsealSecret("device-1", sealed)
	if err != nil {
		t.Fatalf("unseal: %v", err)
	}
	if pin != "123456" {
		t.Fatalf("expected pin back, got %q", pin)
	}
}

func TestUnsealRejectsWrongDevice(t *testing.T) {
	sealed, err := sealSecret("device-1", "123456")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := unsealSecret("device-2", sealed); err == nil {
		t.Fatalf("unseal with a different device key must fail")
	}
}

func TestSealIsSalted(t *testing.T) {
	first, err := sealSecret("device-1", "123456")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	second, err := sealSecret("device-1", "123456")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if first == second {
		t.Fatalf("sealing must produce fresh salt and nonce")
	}
}
