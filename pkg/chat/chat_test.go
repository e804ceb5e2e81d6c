package chat

import (
	"testing"

	"github.com/google/uuid"
)

func TestCommandRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CommandRequest
		wantErr bool
	}{
		{"valid", CommandRequest{GameStateID: uuid.New(), Command: "look"}, false},
		{"missing id", CommandRequest{Command: "look"}, true},
		{"empty command", CommandRequest{GameStateID: uuid.New()}, true},
		{"empty request", CommandRequest{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
