package properties

import "os"

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func PlanetAPIKey() string {
	return os.Getenv("PL_API_KEY")
}

func PlanetBaseURL() string {
	if url := os.Getenv("PLANET_BASE_URL"); url != "" {
		return url
	}
	return "https://api.planet.com"
}

func PlanetClientID() string {
	return os.Getenv("PLANET_CLIENT_ID")
}

func PlanetClientSecret() string {
	return os.Getenv("PLANET_CLIENT_SECRET")
}

func PlanetTokenURL() string {
	return os.Getenv("PLANET_TOKEN_URL")
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
