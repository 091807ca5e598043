package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	rootCmd   = &cobra.Command{
		Use:   "tune-fetch",
		Short: "Tune-Fetch CLI - resolve media references into local files",
		Long:  `A command-line interface for the tune-fetch acquisition server.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Server URL")

	fetchCmd.Flags().Bool("video", false, "Fetch video instead of audio")
	searchCmd.Flags().Int("limit", 5, "Maximum number of results")
	deliverCmd.Flags().Int("index", 0, "Result index from the search token")
	deliverCmd.Flags().Bool("video", false, "Deliver video instead of audio")
	deliverCmd.Flags().String("dest", "", "Delivery destination")
	lyricsCmd.Flags().String("artist", "", "Artist name")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(deliverCmd)
	rootCmd.AddCommand(playlistCmd)
	rootCmd.AddCommand(lyricsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [reference]",
	Short: "Resolve a URL, video ID, or search string into a local file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		video, _ := cmd.Flags().GetBool("video")
		kind := "audio"
		if video {
			kind = "video"
		}

		payload, _ := json.Marshal(map[string]string{
			"reference": args[0],
			"kind":      kind,
		})

		resp, err := http.Post(serverURL+"/api/v1/acquire", "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var result map[string]interface{}
		json.Unmarshal(body, &result)
		fmt.Printf("Media ID: %s\n", result["media_id"])
		fmt.Printf("Kind:     %s\n", result["kind"])
		fmt.Printf("File:     %s\n", result["path"])
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for tracks",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		query := url.QueryEscape(args[0])

		resp, err := http.Get(fmt.Sprintf("%s/api/v1/search?q=%s&limit=%d", serverURL, query, limit))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var result struct {
			Token  string `json:"token"`
			Tracks []struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Channel  string `json:"channel"`
				Duration string `json:"duration"`
				Views    string `json:"views"`
			} `json:"tracks"`
		}
		json.Unmarshal(body, &result)

		fmt.Printf("Token: %s\n\n", result.Token)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tID\tTITLE\tCHANNEL\tDURATION\tVIEWS")
		for i, tr := range result.Tracks {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				i, tr.ID, truncate(tr.Title, 40), truncate(tr.Channel, 20), tr.Duration, tr.Views)
		}
		w.Flush()
	},
}

var deliverCmd = &cobra.Command{
	Use:   "deliver [token]",
	Short: "Deliver a result from an earlier search",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, _ := cmd.Flags().GetInt("index")
		video, _ := cmd.Flags().GetBool("video")
		dest, _ := cmd.Flags().GetString("dest")
		kind := "audio"
		if video {
			kind = "video"
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"token": args[0],
			"index": index,
			"kind":  kind,
			"dest":  dest,
		})

		resp, err := http.Post(serverURL+"/api/v1/deliver", "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}
		fmt.Println("Delivered.")
	},
}

var playlistCmd = &cobra.Command{
	Use:   "playlist [link]",
	Short: "List the video IDs of a playlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(fmt.Sprintf("%s/api/v1/playlist?link=%s", serverURL, url.QueryEscape(args[0])))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var result struct {
			Count    int      `json:"count"`
			MediaIDs []string `json:"media_ids"`
		}
		json.Unmarshal(body, &result)
		fmt.Printf("%d entries\n", result.Count)
		for _, id := range result.MediaIDs {
			fmt.Println(id)
		}
	},
}

var lyricsCmd = &cobra.Command{
	Use:   "lyrics [song]",
	Short: "Look up song lyrics",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		artist, _ := cmd.Flags().GetString("artist")
		endpoint := fmt.Sprintf("%s/api/v1/lyrics?song=%s&artist=%s",
			serverURL, url.QueryEscape(args[0]), url.QueryEscape(artist))

		resp, err := http.Get(endpoint)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			fmt.Fprintf(os.Stderr, "Error: %s\n", string(body))
			os.Exit(1)
		}

		var result struct {
			Title  string `json:"title"`
			Lyrics string `json:"lyrics"`
		}
		json.Unmarshal(body, &result)
		fmt.Printf("%s\n\n%s\n", result.Title, result.Lyrics)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download counters",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/api/v1/stats")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var result struct {
			Report string `json:"report"`
		}
		json.Unmarshal(body, &result)
		fmt.Println(result.Report)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent acquisitions",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := http.Get(serverURL + "/api/v1/acquisitions")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		var acqs []struct {
			MediaID  string `json:"media_id"`
			Kind     string `json:"kind"`
			Source   string `json:"source"`
			Status   string `json:"status"`
			FilePath string `json:"file_path"`
		}
		json.Unmarshal(body, &acqs)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MEDIA ID\tKIND\tSOURCE\tSTATUS\tFILE")
		for _, a := range acqs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.MediaID, a.Kind, a.Source, a.Status, a.FilePath)
		}
		w.Flush()
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
