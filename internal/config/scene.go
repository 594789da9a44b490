package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Scene is the user-editable part of the greeting: what the hidden message
// says and which pictures hang on the ring.
type Scene struct {
	Message   Message  `toml:"message"`
	Paintings []string `toml:"paintings"`
	Radius    float64  `toml:"radius"`
}

// Message is the text revealed when looking straight down.
type Message struct {
	Title    string `toml:"title"`
	Subtitle string `toml:"subtitle"`
}

// DefaultScene returns the built-in greeting.
func DefaultScene() Scene {
	return Scene{
		Message: Message{
			Title:    "Happy Birthday!",
			Subtitle: "Shreya",
		},
		Paintings: []string{
			"assets/animals.jpeg",
			"assets/boots.jpeg",
			"assets/dog.jpeg",
			"assets/flowers.jpeg",
			"assets/vase.jpeg",
		},
		Radius: 25,
	}
}

// LoadScene reads a TOML scene file over the defaults. An empty path yields
// the defaults; a path that does not exist is an error.
func LoadScene(path string) (Scene, error) {
	scene := DefaultScene()
	if path == "" {
		return scene, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene, fmt.Errorf("read scene config: %w", err)
	}
	return DecodeScene(data)
}

// DecodeScene decodes TOML over the defaults.
func DecodeScene(data []byte) (Scene, error) {
	scene := DefaultScene()
	var file Scene
	if err := toml.Unmarshal(data, &file); err != nil {
		return scene, fmt.Errorf("decode scene config: %w", err)
	}
	if file.Message.Title != "" {
		scene.Message.Title = file.Message.Title
	}
	if file.Message.Subtitle != "" {
		scene.Message.Subtitle = file.Message.Subtitle
	}
	if file.Paintings != nil {
		scene.Paintings = file.Paintings
	}
	if file.Radius > 0 {
		scene.Radius = file.Radius
	}
	return scene, nil
}
