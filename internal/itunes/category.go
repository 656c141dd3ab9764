package itunes

import "github.com/hitoshi/podfeed/internal/permissive"

// CategoryID はApple Podcastsのトップレベルカテゴリ。
type CategoryID int

const (
	CategoryArts CategoryID = iota + 1
	CategoryBusiness
	CategoryComedy
	CategoryEducation
	CategoryFiction
	CategoryGovernment
	CategoryHistory
	CategoryHealthAndFitness
	CategoryKidsAndFamily
	CategoryLeisure
	CategoryMusic
	CategoryNews
	CategoryReligionAndSpirituality
	CategoryScience
	CategorySocietyAndCulture
	CategorySports
	CategoryTechnology
	CategoryTrueCrime
	CategoryTVAndFilm
)

// CategoryName は itunes:category の text 属性。未知のカテゴリ名はOtherになる。
type CategoryName = permissive.Enum[CategoryID]

var categoryNames = permissive.NewEnumTable(
	permissive.Literal[CategoryID]{Variant: CategoryArts, Text: "Arts"},
	permissive.Literal[CategoryID]{Variant: CategoryBusiness, Text: "Business"},
	permissive.Literal[CategoryID]{Variant: CategoryComedy, Text: "Comedy"},
	permissive.Literal[CategoryID]{Variant: CategoryEducation, Text: "Education"},
	permissive.Literal[CategoryID]{Variant: CategoryFiction, Text: "Fiction"},
	permissive.Literal[CategoryID]{Variant: CategoryGovernment, Text: "Government"},
	permissive.Literal[CategoryID]{Variant: CategoryHistory, Text: "History"},
	permissive.Literal[CategoryID]{Variant: CategoryHealthAndFitness, Text: "Health & Fitness"},
	permissive.Literal[CategoryID]{Variant: CategoryKidsAndFamily, Text: "Kids & Family"},
	permissive.Literal[CategoryID]{Variant: CategoryLeisure, Text: "Leisure"},
	permissive.Literal[CategoryID]{Variant: CategoryMusic, Text: "Music"},
	permissive.Literal[CategoryID]{Variant: CategoryNews, Text: "News"},
	permissive.Literal[CategoryID]{Variant: CategoryReligionAndSpirituality, Text: "Religion & Spirituality"},
	permissive.Literal[CategoryID]{Variant: CategoryScience, Text: "Science"},
	permissive.Literal[CategoryID]{Variant: CategorySocietyAndCulture, Text: "Society & Culture"},
	permissive.Literal[CategoryID]{Variant: CategorySports, Text: "Sports"},
	permissive.Literal[CategoryID]{Variant: CategoryTechnology, Text: "Technology"},
	permissive.Literal[CategoryID]{Variant: CategoryTrueCrime, Text: "True Crime"},
	permissive.Literal[CategoryID]{Variant: CategoryTVAndFilm, Text: "TV & Film"},
)

// ParseCategoryName はカテゴリ名をデコードする。
func ParseCategoryName(s string) CategoryName {
	return categoryNames.Decode(s)
}

// Categories は宣言順のトップレベルカテゴリ一覧を返す。
func Categories() []CategoryID {
	return categoryNames.Variants()
}

// SubcategoryID はApple Podcastsのサブカテゴリ。
type SubcategoryID int

const (
	// Arts
	SubcategoryBooks SubcategoryID = iota + 1
	SubcategoryDesign
	SubcategoryFashionAndBeauty
	SubcategoryFood
	SubcategoryPerformingArts
	SubcategoryVisualArts
	// Business
	SubcategoryCareers
	SubcategoryEntrepreneurship
	SubcategoryInvesting
	SubcategoryManagement
	SubcategoryMarketing
	SubcategoryNonProfit
	// Comedy
	SubcategoryComedyInterviews
	SubcategoryImprov
	SubcategoryStandUp
	// Education
	SubcategoryCourses
	SubcategoryHowTo
	SubcategoryLanguageLearning
	SubcategorySelfImprovement
	// Fiction
	SubcategoryComedyFiction
	SubcategoryDrama
	SubcategoryScienceFiction
	// Health & Fitness
	SubcategoryAlternativeHealth
	SubcategoryFitness
	SubcategoryMedicine
	SubcategoryMentalHealth
	SubcategoryNutrition
	SubcategorySexuality
	// Kids & Family
	SubcategoryEducationForKids
	SubcategoryParenting
	SubcategoryPetsAndAnimals
	SubcategoryStoriesForKids
	// Leisure
	SubcategoryAnimationAndManga
	SubcategoryAutomotive
	SubcategoryAviation
	SubcategoryCrafts
	SubcategoryGames
	SubcategoryHobbies
	SubcategoryHomeAndGarden
	SubcategoryVideoGames
	// Music
	SubcategoryMusicCommentary
	SubcategoryMusicHistory
	SubcategoryMusicInterviews
	// News
	SubcategoryBusinessNews
	SubcategoryDailyNews
	SubcategoryEntertainmentNews
	SubcategoryNewsCommentary
	SubcategoryPolitics
	SubcategorySportsNews
	SubcategoryTechNews
	// Religion & Spirituality
	SubcategoryBuddhism
	SubcategoryChristianity
	SubcategoryHinduism
	SubcategoryIslam
	SubcategoryJudaism
	SubcategoryReligion
	SubcategorySpirituality
	// Science
	SubcategoryAstronomy
	SubcategoryChemistry
	SubcategoryEarthSciences
	SubcategoryLifeSciences
	SubcategoryMathematics
	SubcategoryNaturalSciences
	SubcategoryNature
	SubcategoryPhysics
	SubcategorySocialSciences
	// Society & Culture
	SubcategoryDocumentary
	SubcategoryPersonalJournals
	SubcategoryPhilosophy
	SubcategoryPlacesAndTravel
	SubcategoryRelationships
	// Sports
	SubcategoryBaseball
	SubcategoryBasketball
	SubcategoryCricket
	SubcategoryFantasySports
	SubcategoryFootball
	SubcategoryGolf
	SubcategoryHockey
	SubcategoryRugby
	SubcategoryRunning
	SubcategorySoccer
	SubcategorySwimming
	SubcategoryTennis
	SubcategoryVolleyball
	SubcategoryWilderness
	SubcategoryWrestling
	// TV & Film
	SubcategoryAfterShows
	SubcategoryFilmHistory
	SubcategoryFilmInterviews
	SubcategoryFilmReviews
	SubcategoryTVReviews
)

// SubcategoryName は入れ子になった itunes:category の text 属性。
// 親カテゴリとの組み合わせが正しいかは検証しない。
type SubcategoryName = permissive.Enum[SubcategoryID]

var subcategoryNames = permissive.NewEnumTable(
	permissive.Literal[SubcategoryID]{Variant: SubcategoryBooks, Text: "Books"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryDesign, Text: "Design"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFashionAndBeauty, Text: "Fashion & Beauty"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFood, Text: "Food"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryPerformingArts, Text: "Performing Arts"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryVisualArts, Text: "Visual Arts"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryCareers, Text: "Careers"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryEntrepreneurship, Text: "Entrepreneurship"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryInvesting, Text: "Investing"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryManagement, Text: "Management"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryMarketing, Text: "Marketing"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryNonProfit, Text: "Non-Profit"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryComedyInterviews, Text: "Comedy Interviews"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryImprov, Text: "Improv"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryStandUp, Text: "Stand-Up"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryCourses, Text: "Courses"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryHowTo, Text: "How To"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryLanguageLearning, Text: "Language Learning"},
	permissive.Literal[SubcategoryID]{Variant: SubcategorySelfImprovement, Text: "Self-Improvement"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryComedyFiction, Text: "Comedy Fiction"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryDrama, Text: "Drama"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryScienceFiction, Text: "Science Fiction"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryAlternativeHealth, Text: "Alternative Health"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFitness, Text: "Fitness"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryMedicine, Text: "Medicine"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryMentalHealth, Text: "Mental Health"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryNutrition, Text: "Nutrition"},
	permissive.Literal[SubcategoryID]{Variant: SubcategorySexuality, Text: "Sexuality"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryEducationForKids, Text: "Education for Kids"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryParenting, Text: "Parenting"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryPetsAndAnimals, Text: "Pets & Animals"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryStoriesForKids, Text: "Stories for Kids"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryAnimationAndManga, Text: "Animation & Manga"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryAutomotive, Text: "Automotive"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryAviation, Text: "Aviation"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryCrafts, Text: "Crafts"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryGames, Text: "Games"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryHobbies, Text: "Hobbies"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryHomeAndGarden, Text: "Home & Garden"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryVideoGames, Text: "Video Games"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryMusicCommentary, Text: "Music Commentary"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryMusicHistory, Text: "Music History"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryMusicInterviews, Text: "Music Interviews"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryBusinessNews, Text: "Business News"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryDailyNews, Text: "Daily News"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryEntertainmentNews, Text: "Entertainment News"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryNewsCommentary, Text: "News Commentary"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryPolitics, Text: "Politics"},
	permissive.Literal[SubcategoryID]{Variant: SubcategorySportsNews, Text: "Sports News"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryTechNews, Text: "Tech News"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryBuddhism, Text: "Buddhism"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryChristianity, Text: "Christianity"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryHinduism, Text: "Hinduism"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryIslam, Text: "Islam"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryJudaism, Text: "Judaism"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryReligion, Text: "Religion"},
	permissive.Literal[SubcategoryID]{Variant: SubcategorySpirituality, Text: "Spirituality"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryAstronomy, Text: "Astronomy"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryChemistry, Text: "Chemistry"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryEarthSciences, Text: "Earth Sciences"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryLifeSciences, Text: "Life Sciences"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryMathematics, Text: "Mathematics"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryNaturalSciences, Text: "Natural Sciences"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryNature, Text: "Nature"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryPhysics, Text: "Physics"},
	permissive.Literal[SubcategoryID]{Variant: SubcategorySocialSciences, Text: "Social Sciences"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryDocumentary, Text: "Documentary"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryPersonalJournals, Text: "Personal Journals"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryPhilosophy, Text: "Philosophy"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryPlacesAndTravel, Text: "Places & Travel"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryRelationships, Text: "Relationships"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryBaseball, Text: "Baseball"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryBasketball, Text: "Basketball"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryCricket, Text: "Cricket"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFantasySports, Text: "Fantasy Sports"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFootball, Text: "Football"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryGolf, Text: "Golf"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryHockey, Text: "Hockey"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryRugby, Text: "Rugby"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryRunning, Text: "Running"},
	permissive.Literal[SubcategoryID]{Variant: SubcategorySoccer, Text: "Soccer"},
	permissive.Literal[SubcategoryID]{Variant: SubcategorySwimming, Text: "Swimming"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryTennis, Text: "Tennis"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryVolleyball, Text: "Volleyball"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryWilderness, Text: "Wilderness"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryWrestling, Text: "Wrestling"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryAfterShows, Text: "After Shows"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFilmHistory, Text: "Film History"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFilmInterviews, Text: "Film Interviews"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryFilmReviews, Text: "Film Reviews"},
	permissive.Literal[SubcategoryID]{Variant: SubcategoryTVReviews, Text: "TV Reviews"},
)

// ParseSubcategoryName はサブカテゴリ名をデコードする。
func ParseSubcategoryName(s string) SubcategoryName {
	return subcategoryNames.Decode(s)
}

// Subcategories は宣言順のサブカテゴリ一覧を返す。
func Subcategories() []SubcategoryID {
	return subcategoryNames.Variants()
}
