package main

import (
	"fmt"
	"log"

	"github.com/infoshqip/internal/config"
	"github.com/infoshqip/internal/db"
)

// Demo data generator for local development.
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	fmt.Println("seeding demo data...")

	seedArticles()
	seedJobs()
	seedMyths()
	seedPages()

	fmt.Println("demo data ready")
}

func seedArticles() {
	var count int64
	db.DB.Model(&db.Article{}).Count(&count)
	if count > 0 {
		fmt.Println("articles already exist, skipping")
		return
	}

	articles := []db.Article{
		{
			TitleSq:    "Rëndësia e gjumit për shëndetin",
			TitleEn:    "Why sleep matters for your health",
			ContentSq:  "## Gjumi\n\nGjumi cilësor përmirëson kujtesën dhe imunitetin.",
			ContentEn:  "## Sleep\n\nQuality sleep improves memory and immunity.",
			CategorySq: "Mirëqenia",
			CategoryEn: "Wellness",
		},
		{
			TitleSq:    "Ushqimi mesdhetar dhe zemra",
			TitleEn:    "The Mediterranean diet and your heart",
			ContentSq:  "Dieta mesdhetare lidhet me rrezik më të ulët kardiovaskular.",
			ContentEn:  "The Mediterranean diet is linked to lower cardiovascular risk.",
			CategorySq: "Ushqyerja",
			CategoryEn: "Nutrition",
		},
	}
	for i := range articles {
		if err := db.DB.Create(&articles[i]).Error; err != nil {
			log.Printf("failed to seed article: %v", err)
		}
	}
	fmt.Println("articles seeded")
}

func seedJobs() {
	var count int64
	db.DB.Model(&db.Job{}).Count(&count)
	if count > 0 {
		fmt.Println("jobs already exist, skipping")
		return
	}

	jobs := []db.Job{
		{
			PositionSq:      "Infermier/e",
			PositionEn:      "Nurse",
			DescriptionSq:   "Kujdes për pacientët në repartin e urgjencës.",
			DescriptionEn:   "Patient care in the emergency department.",
			LocationSq:      "Tiranë",
			LocationEn:      "Tirana",
			BusinessName:    "Spitali Amerikan",
			ApplicationLink: "https://example.com/apply/nurse",
		},
		{
			PositionSq:      "Zhvillues softueri",
			PositionEn:      "Software developer",
			DescriptionSq:   "Zhvillim aplikacionesh web për klientë ndërkombëtarë.",
			DescriptionEn:   "Web application development for international clients.",
			LocationSq:      "Prishtinë",
			LocationEn:      "Pristina",
			BusinessName:    "TechAlb",
			ApplicationLink: "https://example.com/apply/dev",
		},
	}
	for i := range jobs {
		if err := db.DB.Create(&jobs[i]).Error; err != nil {
			log.Printf("failed to seed job: %v", err)
		}
	}
	fmt.Println("jobs seeded")
}

func seedMyths() {
	var count int64
	db.DB.Model(&db.Myth{}).Count(&count)
	if count > 0 {
		fmt.Println("myths already exist, skipping")
		return
	}

	myths := []db.Myth{
		{
			ClaimSq:       "Uji i ftohtë pas ngrënies është i dëmshëm",
			ClaimEn:       "Cold water after meals is harmful",
			ExplanationSq: "Nuk ka prova shkencore që uji i ftohtë dëmton tretjen.",
			ExplanationEn: "There is no scientific evidence that cold water harms digestion.",
		},
		{
			ClaimSq:       "Antibiotikët kurojnë gripin",
			ClaimEn:       "Antibiotics cure the flu",
			ExplanationSq: "Gripi shkaktohet nga viruse, antibiotikët veprojnë vetëm ndaj baktereve.",
			ExplanationEn: "The flu is caused by viruses; antibiotics only work against bacteria.",
		},
	}
	for i := range myths {
		if err := db.DB.Create(&myths[i]).Error; err != nil {
			log.Printf("failed to seed myth: %v", err)
		}
	}
	fmt.Println("myths seeded")
}

func seedPages() {
	var count int64
	db.DB.Model(&db.Page{}).Where("slug = ?", "about").Count(&count)
	if count > 0 {
		fmt.Println("about page already exists, skipping")
		return
	}

	page := db.Page{
		Slug:      "about",
		TitleSq:   "Rreth nesh",
		TitleEn:   "About us",
		ContentSq: "Informacion i besueshëm për punë dhe shëndet, në shqip.",
		ContentEn: "Trusted information on jobs and health, in Albanian.",
	}
	if err := db.DB.Create(&page).Error; err != nil {
		log.Printf("failed to seed about page: %v", err)
		return
	}
	fmt.Println("about page seeded")
}
