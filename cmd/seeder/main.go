// Command seeder posts a sample match specification to a running API and
// prints the response.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/golstats/match-predictor/internal/models"
)

const defaultURL = "http://localhost:8080/api/v1/predictions"

func sampleSpec() models.MatchSpecification {
	return models.MatchSpecification{
		Patch:  models.MustParsePatch("15.10"),
		Region: "KR",
		BlueTeam: models.TeamSubmission{
			TeamName: "T1",
			Players: map[models.Role]string{
				models.RoleTop: "Doran", models.RoleJungle: "Oner", models.RoleMid: "Faker",
				models.RoleADC: "Gumayusi", models.RoleSupport: "Keria",
			},
			Champions: map[models.Role]string{
				models.RoleTop: "Rumble", models.RoleJungle: "Vi", models.RoleMid: "Azir",
				models.RoleADC: "Varus", models.RoleSupport: "Rell",
			},
		},
		RedTeam: models.TeamSubmission{
			TeamName: "Gen.G",
			Players: map[models.Role]string{
				models.RoleTop: "Kiin", models.RoleJungle: "Canyon", models.RoleMid: "Chovy",
				models.RoleADC: "Ruler", models.RoleSupport: "Duro",
			},
			Champions: map[models.Role]string{
				models.RoleTop: "Jax", models.RoleJungle: "Sejuani", models.RoleMid: "Orianna",
				models.RoleADC: "Kaisa", models.RoleSupport: "Nautilus",
			},
		},
	}
}

func main() {
	url := flag.String("url", defaultURL, "prediction endpoint")
	flag.Parse()

	payload, err := json.Marshal(sampleSpec())
	if err != nil {
		log.Fatalf("Failed to marshal JSON: %v", err)
	}

	req, err := http.NewRequest("POST", *url, bytes.NewBuffer(payload))
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(body))

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Prediction request failed")
	}
}
