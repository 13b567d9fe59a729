package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"motorchat/internal/config"
	"motorchat/internal/model"
	"motorchat/internal/repository"
	"motorchat/internal/service"
	"motorchat/internal/utils"
)

var catalog = map[string][]string{
	"Toyota":     {"Corolla", "Corolla Cross", "Hilux", "Yaris", "RAV4"},
	"Volkswagen": {"Gol", "Polo", "Virtus", "T-Cross", "Nivus", "Amarok"},
	"Chevrolet":  {"Onix", "Onix Plus", "Tracker", "S10", "Spin"},
	"Fiat":       {"Argo", "Cronos", "Pulse", "Toro", "Strada", "Mobi"},
	"Hyundai":    {"HB20", "HB20S", "Creta", "Tucson"},
	"Honda":      {"Civic", "City", "HR-V", "Fit"},
	"Jeep":       {"Renegade", "Compass", "Commander"},
	"Renault":    {"Kwid", "Sandero", "Logan", "Duster", "Oroch"},
	"Nissan":     {"Versa", "Kicks", "Frontier"},
	"Ford":       {"Ka", "Ranger", "Territory"},
}

var (
	fuels         = []string{"Flex", "Gasolina", "Diesel", "Elétrico", "Híbrido"}
	transmissions = []string{"Manual", "Automática", "CVT"}
	bodyTypes     = []string{"Hatch", "Sedan", "SUV", "Picape", "Perua", "Coupé"}
	colors        = []string{"Preto", "Branco", "Prata", "Cinza", "Vermelho", "Azul", "Verde"}
	engines       = []string{"1.0", "1.0 Turbo", "1.3", "1.4", "1.6", "1.8", "2.0", "2.0 Turbo", "2.8 Diesel"}
)

const seedSystemPrompt = "Você gera registros de veículos para o estoque de uma loja brasileira. " +
	"Responda APENAS com um array JSON de objetos com os campos: " +
	"brand (string), model (string), year (int, 1998-2025), engine (string, ex.: \"1.0 Turbo\"), " +
	"fuel_type (Flex|Gasolina|Diesel|Elétrico|Híbrido), color (string), " +
	"mileage_km (int, 0-180000), doors (2|4|5), transmission (Manual|Automática|CVT), " +
	"body_type (Hatch|Sedan|SUV|Picape|Perua|Coupé), price (número em reais, ex.: 89900.00). " +
	"Use marcas e modelos reais vendidos no Brasil. Sem texto fora do JSON."

type seedVehicle struct {
	Brand        string          `json:"brand"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	Engine       string          `json:"engine"`
	FuelType     string          `json:"fuel_type"`
	Color        string          `json:"color"`
	MileageKM    int             `json:"mileage_km"`
	Doors        int             `json:"doors"`
	Transmission string          `json:"transmission"`
	BodyType     string          `json:"body_type"`
	Price        decimal.Decimal `json:"price"`
	VIN          string          `json:"vin"`
}

func main() {
	count := flag.Int("n", 100, "number of vehicles to seed")
	batchSize := flag.Int("batch", 10, "vehicles generated per AI request")
	wipe := flag.Bool("wipe", false, "delete existing vehicles first")
	useAI := flag.Bool("ai", false, "generate records with the configured text provider")
	modelOverride := flag.String("model", "", "override the configured generation model")
	dryRun := flag.Bool("dry-run", false, "print records instead of inserting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}
	if *modelOverride != "" {
		cfg.AI.Model = *modelOverride
	}

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ Failed to ensure schema: %v", err)
	}

	if *wipe && !*dryRun {
		if err := repo.Wipe(ctx); err != nil {
			log.Fatalf("❌ Failed to wipe vehicles: %v", err)
		}
		log.Println("🧹 Existing vehicles removed")
	}

	var gen service.TextGenerator
	if *useAI {
		gen = buildGenerator(ctx, cfg)
		if gen == nil {
			log.Fatal("❌ -ai requires a configured provider key (OPENAI_API_KEY or GEMINI_API_KEY)")
		}
	}

	inserted := 0
	for inserted < *count {
		want := *count - inserted
		if want > *batchSize {
			want = *batchSize
		}

		var batch []model.Vehicle
		if gen != nil {
			batch, err = generateBatch(ctx, gen, want)
			if err != nil {
				log.Fatalf("❌ AI generation failed: %v", err)
			}
		} else {
			batch = randomBatch(want)
		}

		for i := range batch {
			v := &batch[i]
			if *dryRun {
				fmt.Printf("%s %s %d | %s | R$ %s | VIN %s\n",
					v.Brand, v.Model, v.Year, v.BodyType, v.Price.StringFixed(2), v.VIN)
				inserted++
				continue
			}
			exists, err := repo.VINExists(ctx, v.VIN)
			if err != nil {
				log.Fatalf("❌ Failed to check VIN: %v", err)
			}
			if exists {
				v.VIN = utils.RandomVIN()
			}
			if err := repo.Insert(ctx, v); err != nil {
				log.Fatalf("❌ Failed to insert vehicle: %v", err)
			}
			inserted++
		}
		log.Printf("📦 Seeded %d/%d", inserted, *count)

		if gen != nil && inserted < *count {
			time.Sleep(400 * time.Millisecond)
		}
	}

	log.Printf("✅ Done: %d vehicles", inserted)
}

func buildGenerator(ctx context.Context, cfg *config.Config) service.TextGenerator {
	if !cfg.AI.Enabled {
		return nil
	}
	if cfg.AI.Provider == "gemini" {
		gen, err := service.NewGeminiGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Printf("⚠️  Gemini provider unavailable: %v", err)
			return nil
		}
		return gen
	}
	return service.NewOpenAIGenerator(&cfg.AI)
}

func randomBatch(n int) []model.Vehicle {
	brands := make([]string, 0, len(catalog))
	for b := range catalog {
		brands = append(brands, b)
	}

	out := make([]model.Vehicle, 0, n)
	for i := 0; i < n; i++ {
		brand := brands[rand.Intn(len(brands))]
		models := catalog[brand]
		price := 30000 + rand.Float64()*270000

		out = append(out, model.Vehicle{
			Brand:        brand,
			Model:        models[rand.Intn(len(models))],
			Year:         1998 + rand.Intn(28),
			Engine:       engines[rand.Intn(len(engines))],
			FuelType:     fuels[rand.Intn(len(fuels))],
			Color:        colors[rand.Intn(len(colors))],
			MileageKM:    rand.Intn(180001),
			Doors:        []int{2, 4, 5}[rand.Intn(3)],
			Transmission: transmissions[rand.Intn(len(transmissions))],
			BodyType:     bodyTypes[rand.Intn(len(bodyTypes))],
			Price:        decimal.NewFromFloat(price).Round(2),
			VIN:          utils.RandomVIN(),
		})
	}
	return out
}

// generateBatch asks the provider for n records and repairs what it can:
// missing or invalid VINs get regenerated, non-positive prices get a random
// fallback. Records missing brand or model are dropped.
func generateBatch(ctx context.Context, gen service.TextGenerator, n int) ([]model.Vehicle, error) {
	prompt := fmt.Sprintf("Gere %d veículos variados (anos, preços e carrocerias diferentes).", n)
	messages := []service.ChatMessage{
		{Role: service.RoleSystem, Content: seedSystemPrompt},
		{Role: service.RoleUser, Content: prompt},
	}

	raw, err := generateWithRetry(ctx, gen, messages)
	if err != nil {
		return nil, err
	}

	var records []seedVehicle
	if err := utils.DecodeLLMJSON(raw, &records); err != nil {
		// Some models wrap the array in an object.
		var wrapper struct {
			Vehicles []seedVehicle `json:"vehicles"`
		}
		if werr := utils.DecodeLLMJSON(raw, &wrapper); werr != nil || len(wrapper.Vehicles) == 0 {
			return nil, fmt.Errorf("decode generated vehicles: %w", err)
		}
		records = wrapper.Vehicles
	}

	out := make([]model.Vehicle, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Brand) == "" || strings.TrimSpace(r.Model) == "" {
			continue
		}
		vin := utils.NormalizeVIN(r.VIN)
		if !utils.ValidVIN(vin) {
			vin = utils.RandomVIN()
		}
		price := r.Price.Round(2)
		if !price.IsPositive() {
			price = decimal.NewFromFloat(30000 + rand.Float64()*270000).Round(2)
		}
		doors := r.Doors
		if doors != 2 && doors != 4 && doors != 5 {
			doors = 4
		}

		out = append(out, model.Vehicle{
			Brand:        r.Brand,
			Model:        r.Model,
			Year:         r.Year,
			Engine:       r.Engine,
			FuelType:     r.FuelType,
			Color:        r.Color,
			MileageKM:    r.MileageKM,
			Doors:        doors,
			Transmission: r.Transmission,
			BodyType:     r.BodyType,
			Price:        price,
			VIN:          vin,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("provider returned no usable records")
	}
	return out, nil
}

// generateWithRetry retries transient provider failures with exponential
// backoff plus jitter. Auth failures abort immediately.
func generateWithRetry(ctx context.Context, gen service.TextGenerator, messages []service.ChatMessage) (string, error) {
	const maxAttempts = 4
	backoff := 2 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := gen.Generate(ctx, messages)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if errors.Is(err, service.ErrAuthFailed) {
			return "", err
		}
		if attempt == maxAttempts {
			break
		}

		jitter := time.Duration(rand.Int63n(int64(backoff) / 5))
		wait := backoff + jitter
		log.Printf("⚠️  Generation attempt %d/%d failed (%v), retrying in %s", attempt, maxAttempts, err, wait)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		backoff *= 2
	}
	return "", lastErr
}
